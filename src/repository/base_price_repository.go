package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
)

type BasePriceStorageInterface interface {
	GetBasePrice(symbol string) (*float64, error)
	SetBasePrice(symbol string, price float64) error
}

// BasePriceRepository holds the trailing reference price, one row per symbol
// per bot. The upsert keeps the single-row invariant across crashes, redis
// only shortcuts reads and is invalidated on every write.
type BasePriceRepository struct {
	DB         *sql.DB
	RDB        *redis.Client
	Ctx        *context.Context
	CurrentBot *model.Bot
}

func (b *BasePriceRepository) GetBasePrice(symbol string) (*float64, error) {
	cached := b.RDB.Get(*b.Ctx, b.getCacheKey(symbol)).Val()
	if len(cached) > 0 {
		basePrice, err := strconv.ParseFloat(cached, 64)
		if err == nil {
			return &basePrice, nil
		}
	}

	var basePrice float64
	err := b.DB.QueryRow(`
		SELECT
			bp.base_price as BasePrice
		FROM base_prices bp
		WHERE bp.symbol = ? AND bp.bot_id = ?`,
		symbol, b.CurrentBot.Id,
	).Scan(&basePrice)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		log.Printf("[%s] GetBasePrice: %s", symbol, err.Error())
		return nil, err
	}

	b.RDB.Set(*b.Ctx, b.getCacheKey(symbol), basePrice, time.Minute)

	return &basePrice, nil
}

func (b *BasePriceRepository) SetBasePrice(symbol string, price float64) error {
	_, err := b.DB.Exec(`
		INSERT INTO base_prices SET
			symbol = ?,
			bot_id = ?,
			base_price = ?,
			updated_at = ?
		ON DUPLICATE KEY UPDATE
			base_price = ?,
			updated_at = ?
	`,
		symbol,
		b.CurrentBot.Id,
		price,
		time.Now(),
		price,
		time.Now(),
	)

	if err != nil {
		log.Printf("[%s] SetBasePrice: %s", symbol, err.Error())
		return err
	}

	b.RDB.Del(*b.Ctx, b.getCacheKey(symbol))

	return nil
}

func (b *BasePriceRepository) getCacheKey(symbol string) string {
	return fmt.Sprintf("base-price-%s-bot-%d", symbol, b.CurrentBot.Id)
}
