package exchange

import (
	"errors"
	"fmt"
	"time"

	"gitlab.com/open-soft/go-autotrade-bot/src/client"
	"gitlab.com/open-soft/go-autotrade-bot/src/model"
	"gitlab.com/open-soft/go-autotrade-bot/src/repository"
)

const tickerFreshMillis = 10_000

type PriceServiceInterface interface {
	GetLastPrice(symbol string) (float64, error)
}

// PriceService prefers a fresh ticker from the ws stream cache and falls
// back to the REST tickers endpoint when the stream is quiet.
type PriceService struct {
	ByBit            client.ExchangeAPIInterface
	TickerRepository repository.TickerStorageInterface
}

func (p *PriceService) GetLastPrice(symbol string) (float64, error) {
	ticker := p.TickerRepository.GetTicker(symbol)

	if ticker != nil && ticker.Price > 0 {
		minTs := model.TimestampMilli(time.Now().UnixMilli() - tickerFreshMillis)
		if ticker.Timestamp.Gte(minTs) {
			return ticker.Price, nil
		}
	}

	restTicker, err := p.ByBit.GetTicker(symbol)
	if err != nil {
		return 0.00, err
	}

	if restTicker.Price <= 0 {
		return 0.00, errors.New(fmt.Sprintf("[%s] no quote available", symbol))
	}

	p.TickerRepository.SaveTicker(restTicker)

	return restTicker.Price, nil
}
