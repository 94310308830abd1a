package model

type Bot struct {
	Id      int64  `json:"id"`
	BotUuid string `json:"botUuid"`
	Symbol  string `json:"symbol"`
}
