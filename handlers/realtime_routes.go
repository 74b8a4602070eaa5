// handlers/realtime_routes.go
package handlers

import (
	"darkzone-stats-server/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func SetupRealtimeRoutes(app *fiber.App, hub *realtime.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", websocket.New(realtime.ServeWS(hub)))
}
