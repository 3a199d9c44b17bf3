package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/lk16/flippy/referee/internal/othello"
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	Prefork           bool
	BoardSize         int
	RedisURL          string
	PostgresURL       string
	Token             string
	BasicAuthUsername string
	BasicAuthPassword string
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvMust("FLIPPY_REFEREE_SERVER_HOST"),
		ServerPort:        getEnvMust("FLIPPY_REFEREE_SERVER_PORT"),
		Prefork:           getEnvMustBool("FLIPPY_REFEREE_SERVER_PREFORK"),
		BoardSize:         getEnvBoardSize("FLIPPY_REFEREE_BOARD_SIZE"),
		RedisURL:          os.Getenv("FLIPPY_REDIS_URL"),
		PostgresURL:       os.Getenv("FLIPPY_POSTGRES_URL"),
		Token:             os.Getenv("FLIPPY_REFEREE_TOKEN"),
		BasicAuthUsername: os.Getenv("FLIPPY_REFEREE_BASIC_AUTH_USER"),
		BasicAuthPassword: os.Getenv("FLIPPY_REFEREE_BASIC_AUTH_PASS"),
	}
}

// AuthEnabled checks if the API requires a token or basic auth credentials.
func (cfg *ServerConfig) AuthEnabled() bool {
	return cfg.Token != "" || cfg.BasicAuthEnabled()
}

// BasicAuthEnabled checks if basic auth credentials are configured.
func (cfg *ServerConfig) BasicAuthEnabled() bool {
	return cfg.BasicAuthUsername != "" && cfg.BasicAuthPassword != ""
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

// getEnvBoardSize returns the board size from the environment, or the default size if it is not set.
func getEnvBoardSize(key string) int {
	value := os.Getenv(key)
	if value == "" {
		return othello.DefaultBoardSize
	}

	size, err := parseBoardSize(value)
	if err != nil {
		slog.Error("Cannot load environment variable", "key", key, "value", value, "error", err)
		os.Exit(1)
	}

	return size
}

func parseBoardSize(value string) (int, error) {
	size, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	// Validates the size, the start position needs an even size.
	if _, err = othello.NewBoardStart(size); err != nil {
		return 0, err
	}

	return size, nil
}
