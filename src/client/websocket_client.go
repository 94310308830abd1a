package client

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
)

// ListenByBit connects to the public spot stream, subscribes to the given
// topics and pumps raw messages into eventChannel. It keeps reconnecting
// forever, the consumer only ever sees a quiet channel during an outage.
func ListenByBit(address string, eventChannel chan<- []byte, streams []string, connectionId int64) *websocket.Conn {
	connection, _, err := websocket.DefaultDialer.Dial(address, nil)
	if err != nil {
		log.Printf("ByBit [err_1] WS Events [%s]: %s, wait and reconnect...", address, err.Error())
		time.Sleep(time.Second * 3)
		connectionId++

		return ListenByBit(address, eventChannel, streams, connectionId)
	}

	go func() {
		for {
			_, message, err := connection.ReadMessage()
			if err != nil {
				log.Printf("ByBit [err_2] WS Events, read [%s]: %s", address, err.Error())

				_ = connection.Close()
				log.Printf("ByBit [err_2] WS Events, wait and reconnect...")
				time.Sleep(time.Second * 3)
				connectionId++
				ListenByBit(address, eventChannel, streams, connectionId)
				return
			}

			eventChannel <- message
		}
	}()

	if len(streams) > 0 {
		socketRequest := model.ByBitSocketStreamsRequest{
			Operation: "subscribe",
			Arguments: streams,
		}
		serialized, _ := json.Marshal(socketRequest)
		_ = connection.WriteMessage(websocket.TextMessage, serialized)
	}

	return connection
}
