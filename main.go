package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"gitlab.com/open-soft/go-autotrade-bot/src/config"
)

func main() {
	pwd, _ := os.Getwd()
	if _, err := os.Stat(fmt.Sprintf("%s/.env", pwd)); err == nil {
		log.Println(".env is found, loading variables...")
		err = godotenv.Load()
		if err != nil {
			log.Println(err)
		}
	}

	container := config.InitServiceContainer()
	defer container.Db.Close()

	settings := container.Settings

	log.Printf("[%s] Autotrade bot is starting...", settings.Symbol)
	log.Printf(
		"[%s] DIP: -%.2f%% TP: +%.2f%% Order: %.2f %s, step: %f, poll: %ds",
		settings.Symbol,
		settings.DipPercent,
		settings.TakeProfitPercent,
		settings.OrderNotional,
		settings.QuoteAsset,
		settings.QtyStep,
		settings.PollIntervalSeconds,
	)

	lastTrades := container.TradeRepository.GetTrades(settings.Symbol, 1)
	if len(lastTrades) > 0 {
		lastTrade := lastTrades[0]
		log.Printf(
			"[%s] Resuming, last trade: %s %.5f @ %.4f (%s)",
			settings.Symbol, lastTrade.Side, lastTrade.Quantity, lastTrade.Price, lastTrade.CreatedAt,
		)
	}

	container.TelegramNotificator.Notify(fmt.Sprintf(
		"🤖 *%s autotrade bot is starting.*\nStrategy: -%.1f%% BUY, +%.1f%% SELL\nOrder size: %.2f %s",
		settings.Symbol,
		settings.DipPercent,
		settings.TakeProfitPercent,
		settings.OrderNotional,
		settings.QuoteAsset,
	))

	container.TickerStreamListener.ListenAll()

	stop := make(chan struct{})
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		sig := <-signals
		log.Printf("[%s] Received %s, finishing the current tick...", settings.Symbol, sig)
		close(stop)
	}()

	container.TraderService.Run(stop)
}
