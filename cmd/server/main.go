package main

import (
	"log/slog"
	"os"

	"github.com/lk16/flippy/referee/internal"
	"github.com/lk16/flippy/referee/internal/config"
)

func main() {
	if err := config.InitEnvironment(); err != nil {
		slog.Error("Failed to load env file", "error", err)
		os.Exit(1)
	}

	// Setup app
	app, cfg, services := internal.SetupApp()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	err := app.Listen(address)

	if closeErr := services.Close(); closeErr != nil {
		slog.Error("Failed to close services", "error", closeErr)
	}

	if err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
