package exchange

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"gitlab.com/open-soft/go-autotrade-bot/src/client"
	"gitlab.com/open-soft/go-autotrade-bot/src/model"
	"gitlab.com/open-soft/go-autotrade-bot/src/repository"
)

// TickerStreamListener subscribes to the public tickers topic and keeps the
// last-ticker cache warm. Losing the stream only costs the REST fallback,
// so decode errors are logged and dropped.
type TickerStreamListener struct {
	TickerRepository repository.TickerStorageInterface
	WsDSN            string
	Symbol           string
}

func (t *TickerStreamListener) ListenAll() {
	eventChannel := make(chan []byte, 1000)

	go func() {
		for {
			message := <-eventChannel

			if !strings.Contains(string(message), "tickers.") {
				continue
			}

			var tickerEvent model.ByBitWsTickerEvent
			err := json.Unmarshal(message, &tickerEvent)
			if err != nil {
				log.Printf("[%s] Ticker stream error: %s", t.Symbol, err.Error())
				continue
			}

			if tickerEvent.Data.Symbol == "" || tickerEvent.Data.LastPrice.Value() <= 0 {
				continue
			}

			t.TickerRepository.SaveTicker(model.Ticker{
				Symbol:    tickerEvent.Data.Symbol,
				Price:     tickerEvent.Data.LastPrice.Value(),
				Timestamp: tickerEvent.Ts,
			})
		}
	}()

	client.ListenByBit(t.WsDSN, eventChannel, []string{
		fmt.Sprintf("tickers.%s", strings.ToUpper(t.Symbol)),
	}, 0)

	log.Printf("[%s] Ticker stream is started", t.Symbol)
}
