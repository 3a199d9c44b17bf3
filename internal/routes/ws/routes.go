package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/flippy/referee/internal/services"
	"github.com/lk16/flippy/referee/internal/ws"
)

func handleWs(c *websocket.Conn) {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	sessionID := uuid.New().String()

	slog.Info("ws session opened", "session", sessionID)

	h := ws.NewHandler(c, services, sessionID)
	err := h.Handle()
	if err != nil {
		slog.Info("ws session closed", "session", sessionID, "error", err)
	}
}

func upgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", upgradeOnly, websocket.New(handleWs))
}
