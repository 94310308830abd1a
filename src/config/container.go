package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gitlab.com/open-soft/go-autotrade-bot/src/client"
	"gitlab.com/open-soft/go-autotrade-bot/src/model"
	"gitlab.com/open-soft/go-autotrade-bot/src/repository"
	"gitlab.com/open-soft/go-autotrade-bot/src/service"
	"gitlab.com/open-soft/go-autotrade-bot/src/service/exchange"
	"gitlab.com/open-soft/go-autotrade-bot/src/service/strategy"
	"gitlab.com/open-soft/go-autotrade-bot/src/utils"
)

var quoteAssets = []string{"USDT", "USDC", "BUSD", "EUR", "BTC", "ETH"}

func InitServiceContainer() Container {
	db, err := sql.Open("mysql", os.Getenv("DATABASE_DSN"))
	if err != nil {
		log.Fatal(fmt.Sprintf("MySQL can't connect: %s", err.Error()))
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(8)
	db.SetConnMaxLifetime(time.Minute)

	var ctx = context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_DSN"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	apiKey := os.Getenv("BYBIT_API_KEY")
	apiSecret := os.Getenv("BYBIT_API_SECRET")
	if len(apiKey) == 0 || len(apiSecret) == 0 {
		log.Fatal("BYBIT_API_KEY / BYBIT_API_SECRET must be set")
	}

	httpClient := client.HttpClient{}
	byBit := client.ByBit{
		HttpClient: &httpClient,
		DSN:        os.Getenv("BYBIT_API_DSN"),
		ApiKey:     apiKey,
		ApiSecret:  apiSecret,
	}

	settings := loadStrategySettings(&byBit)

	botUuid := os.Getenv("BOT_UUID")
	if len(botUuid) == 0 {
		botUuid = uuid.New().String()
		log.Printf("BOT_UUID is not set, generated: %s", botUuid)
	}

	botRepository := repository.BotRepository{
		DB: db,
	}

	currentBot := botRepository.GetBot(botUuid)
	if currentBot == nil {
		err := botRepository.Create(model.Bot{
			BotUuid: botUuid,
			Symbol:  settings.Symbol,
		})
		if err != nil {
			panic(err)
		}

		currentBot = botRepository.GetBot(botUuid)
		if currentBot == nil {
			panic(fmt.Sprintf("Can't initialize bot: %s", botUuid))
		}
	}

	log.Printf("Bot [%s] is initialized successfully", currentBot.BotUuid)

	basePriceRepository := repository.BasePriceRepository{
		DB:         db,
		RDB:        rdb,
		Ctx:        &ctx,
		CurrentBot: currentBot,
	}
	tradeRepository := repository.TradeRepository{
		DB:         db,
		CurrentBot: currentBot,
	}
	tickerRepository := repository.TickerRepository{
		RDB:        rdb,
		Ctx:        &ctx,
		CurrentBot: currentBot,
	}

	balanceService := exchange.BalanceService{
		RDB:        rdb,
		Ctx:        &ctx,
		CurrentBot: currentBot,
		ByBit:      &byBit,
	}

	priceService := exchange.PriceService{
		ByBit:            &byBit,
		TickerRepository: &tickerRepository,
	}

	telegramNotificator := service.TelegramNotificator{
		HttpClient: &httpClient,
		Host:       "https://api.telegram.org",
		BotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatId:     os.Getenv("TELEGRAM_CHAT_ID"),
	}

	formatter := utils.Formatter{}

	orderExecutor := exchange.OrderExecutor{
		ByBit:           &byBit,
		TradeRepository: &tradeRepository,
		BalanceService:  &balanceService,
	}

	traderService := exchange.TraderService{
		PriceService:        &priceService,
		BalanceService:      &balanceService,
		BasePriceRepository: &basePriceRepository,
		OrderExecutor:       &orderExecutor,
		Notificator:         &telegramNotificator,
		Strategy: &strategy.DipStrategy{
			Formatter: &formatter,
		},
		Settings: settings,
	}

	tickerStreamListener := exchange.TickerStreamListener{
		TickerRepository: &tickerRepository,
		WsDSN:            os.Getenv("BYBIT_WS_DSN"),
		Symbol:           settings.Symbol,
	}

	return Container{
		Db:                   db,
		CurrentBot:           currentBot,
		Settings:             settings,
		ByBit:                &byBit,
		BalanceService:       &balanceService,
		PriceService:         &priceService,
		TelegramNotificator:  &telegramNotificator,
		TradeRepository:      &tradeRepository,
		BasePriceRepository:  &basePriceRepository,
		TraderService:        &traderService,
		TickerStreamListener: &tickerStreamListener,
	}
}

func loadStrategySettings(byBit *client.ByBit) model.StrategySettings {
	symbol := strings.ToUpper(os.Getenv("SYMBOL"))
	if len(symbol) == 0 {
		log.Fatal("SYMBOL must be set")
	}

	baseAsset, quoteAsset := splitSymbol(symbol)

	qtyStep := getEnvFloat("QTY_STEP", 0.001)
	if qtyStep <= 0 {
		// Auto mode: take the lot step from instruments-info.
		resolved, err := byBit.GetQtyStep(symbol)
		if err != nil {
			log.Fatal(fmt.Sprintf("[%s] can't resolve qty step: %s", symbol, err.Error()))
		}
		qtyStep = resolved
		log.Printf("[%s] Qty step resolved from the exchange: %s", symbol, strconv.FormatFloat(qtyStep, 'f', -1, 64))
	}

	return model.StrategySettings{
		Symbol:              symbol,
		BaseAsset:           baseAsset,
		QuoteAsset:          quoteAsset,
		DipPercent:          getEnvFloat("DIP_PERCENT", 5.0),
		TakeProfitPercent:   getEnvFloat("TP_PERCENT", 4.0),
		OrderNotional:       getEnvFloat("ORDER_USDT", 25.0),
		MinPositionNotional: getEnvFloat("MIN_POSITION_USDT", 5.0),
		QtyStep:             qtyStep,
		PollIntervalSeconds: getEnvInt("POLL_INTERVAL_SECONDS", 30),
	}
}

func splitSymbol(symbol string) (string, string) {
	for _, quoteAsset := range quoteAssets {
		if strings.HasSuffix(symbol, quoteAsset) && len(symbol) > len(quoteAsset) {
			return strings.TrimSuffix(symbol, quoteAsset), quoteAsset
		}
	}

	log.Fatal(fmt.Sprintf("[%s] unsupported quote asset", symbol))

	return "", ""
}

func getEnvFloat(name string, defaultValue float64) float64 {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return defaultValue
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatal(fmt.Sprintf("%s is not a number: %s", name, raw))
	}

	return value
}

func getEnvInt(name string, defaultValue int64) int64 {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return defaultValue
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatal(fmt.Sprintf("%s is not a number: %s", name, raw))
	}

	return value
}

type Container struct {
	Db                   *sql.DB
	CurrentBot           *model.Bot
	Settings             model.StrategySettings
	ByBit                *client.ByBit
	BalanceService       *exchange.BalanceService
	PriceService         *exchange.PriceService
	TelegramNotificator  *service.TelegramNotificator
	TradeRepository      *repository.TradeRepository
	BasePriceRepository  *repository.BasePriceRepository
	TraderService        *exchange.TraderService
	TickerStreamListener *exchange.TickerStreamListener
}
