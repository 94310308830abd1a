package service

import (
	"encoding/json"
	"fmt"
	"log"

	"gitlab.com/open-soft/go-autotrade-bot/src/client"
)

type NotifierInterface interface {
	Notify(text string)
}

// TelegramNotificator posts to the Telegram Bot API. Notifications are best
// effort: every failure is logged and swallowed, the trade loop never blocks
// or aborts on them.
type TelegramNotificator struct {
	HttpClient client.HttpClientInterface
	Host       string
	BotToken   string
	ChatId     string
}

func (t *TelegramNotificator) IsEnabled() bool {
	return len(t.BotToken) > 0 && len(t.ChatId) > 0
}

func (t *TelegramNotificator) Notify(text string) {
	if !t.IsEnabled() {
		log.Println("Telegram is not configured, message is skipped")
		return
	}

	encoded, _ := json.Marshal(map[string]string{
		"chat_id":    t.ChatId,
		"text":       text,
		"parse_mode": "Markdown",
	})

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.Host, t.BotToken)
	_, err := t.HttpClient.Post(url, encoded, map[string]string{})

	if err != nil {
		log.Printf("Telegram notification failed: %s", err.Error())
	}
}
