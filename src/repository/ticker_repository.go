package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
)

const TickerTtlSeconds = 15

type TickerStorageInterface interface {
	SaveTicker(ticker model.Ticker)
	GetTicker(symbol string) *model.Ticker
}

// TickerRepository caches the most recent ws ticker. The short TTL makes a
// stalled stream degrade to REST polling instead of serving stale prices.
type TickerRepository struct {
	RDB        *redis.Client
	Ctx        *context.Context
	CurrentBot *model.Bot
}

func (t *TickerRepository) SaveTicker(ticker model.Ticker) {
	encoded, err := json.Marshal(ticker)
	if err != nil {
		return
	}

	t.RDB.Set(*t.Ctx, t.getCacheKey(ticker.Symbol), string(encoded), time.Second*TickerTtlSeconds)
}

func (t *TickerRepository) GetTicker(symbol string) *model.Ticker {
	cached := t.RDB.Get(*t.Ctx, t.getCacheKey(symbol)).Val()
	if len(cached) == 0 {
		return nil
	}

	var ticker model.Ticker
	err := json.Unmarshal([]byte(cached), &ticker)
	if err != nil {
		return nil
	}

	return &ticker
}

func (t *TickerRepository) getCacheKey(symbol string) string {
	return fmt.Sprintf("last-ticker-%s-bot-%d", symbol, t.CurrentBot.Id)
}
