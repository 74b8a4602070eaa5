// realtime/client.go
package realtime

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"darkzone-stats-server/utils"
)

// EventSubscribeUpdates is the client frame that joins the updates channel.
const EventSubscribeUpdates = "subscribe-updates"

type clientFrame struct {
	Event string `json:"event"`
}

// ServeWS returns the websocket connection handler. Each connection gets a
// generated id, a writer goroutine pumping hub envelopes to the socket, and
// a read loop handling subscribe frames. Disconnect unregisters the client.
func ServeWS(hub *Hub) func(*websocket.Conn) {
	logger := utils.Logger.WithFields(logrus.Fields{
		"module": "realtime.ServeWS",
	})

	return func(conn *websocket.Conn) {
		id := uuid.NewString()
		sub := hub.Register(id)
		defer hub.Unregister(id)

		l := logger.WithField("client_id", id)
		l.Info("client connected")

		go func() {
			for {
				select {
				case <-sub.done:
					return
				case env := <-sub.send:
					if err := conn.WriteJSON(env); err != nil {
						sub.Close()
						return
					}
				}
			}
		}()

		for {
			var frame clientFrame
			if err := conn.ReadJSON(&frame); err != nil {
				l.WithError(err).Debug("client disconnected")
				return
			}
			if frame.Event == EventSubscribeUpdates {
				hub.Subscribe(id, ChannelUpdates)
			}
		}
	}
}
