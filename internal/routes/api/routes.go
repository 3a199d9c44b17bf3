package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/referee/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.AuthOrToken())

	// Move routes
	apiGroup.Get("/moves/start", GetStart)
	apiGroup.Post("/moves/legal", LegalMoves)
	apiGroup.Post("/moves/apply", ApplyMove)
	apiGroup.Get("/moves/stats", GetMoveStats)
}
