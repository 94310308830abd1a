package repository

import (
	"database/sql"
	"log"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
)

type BotRepository struct {
	DB *sql.DB
}

func (b *BotRepository) GetBot(botUuid string) *model.Bot {
	var bot model.Bot

	err := b.DB.QueryRow(`
		SELECT
			b.id as Id,
			b.uuid as Uuid,
			b.symbol as Symbol
		FROM bots b
		WHERE b.uuid = ?`, botUuid,
	).Scan(
		&bot.Id,
		&bot.BotUuid,
		&bot.Symbol,
	)

	if err != nil {
		log.Println(err)
		return nil
	}

	return &bot
}

func (b *BotRepository) Create(bot model.Bot) error {
	_, err := b.DB.Exec(`INSERT INTO bots SET uuid = ?, symbol = ?`, bot.BotUuid, bot.Symbol)

	if err != nil {
		log.Println(err)
		return err
	}

	return nil
}
