package repository

import (
	"database/sql"
	"log"
	"time"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
)

type TradeStorageInterface interface {
	Create(trade model.Trade) error
}

type TradeRepository struct {
	DB         *sql.DB
	CurrentBot *model.Bot
}

func (t *TradeRepository) Create(trade model.Trade) error {
	_, err := t.DB.Exec(`
		INSERT INTO trades SET
			bot_id = ?,
			symbol = ?,
			side = ?,
			quantity = ?,
			price = ?,
			avg_price = ?,
			order_id = ?,
			created_at = ?
	`,
		t.CurrentBot.Id,
		trade.Symbol,
		trade.Side,
		trade.Quantity,
		trade.Price,
		trade.AvgPrice,
		trade.OrderId,
		time.Now(),
	)

	if err != nil {
		log.Printf("[%s] Trade is not saved: %s", trade.Symbol, err.Error())
		return err
	}

	return nil
}

func (t *TradeRepository) GetTrades(symbol string, limit int64) []model.Trade {
	trades := make([]model.Trade, 0)

	res, err := t.DB.Query(`
		SELECT
			tr.id as Id,
			tr.bot_id as BotId,
			tr.symbol as Symbol,
			tr.side as Side,
			tr.quantity as Quantity,
			tr.price as Price,
			tr.avg_price as AvgPrice,
			tr.order_id as OrderId,
			tr.created_at as CreatedAt
		FROM trades tr
		WHERE tr.symbol = ? AND tr.bot_id = ?
		ORDER BY tr.id DESC
		LIMIT ?`,
		symbol, t.CurrentBot.Id, limit,
	)

	if err != nil {
		log.Printf("[%s] GetTrades: %s", symbol, err.Error())
		return trades
	}

	defer res.Close()

	for res.Next() {
		var trade model.Trade
		err := res.Scan(
			&trade.Id,
			&trade.BotId,
			&trade.Symbol,
			&trade.Side,
			&trade.Quantity,
			&trade.Price,
			&trade.AvgPrice,
			&trade.OrderId,
			&trade.CreatedAt,
		)
		if err != nil {
			log.Printf("[%s] GetTrades: %s", symbol, err.Error())
			continue
		}

		trades = append(trades, trade)
	}

	return trades
}
