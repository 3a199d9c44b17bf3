package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/flippy/referee/internal/config"
	"github.com/lk16/flippy/referee/internal/referee"
	"github.com/redis/go-redis/v9"
)

// Services contains the move engine and the connections to the external services.
// Postgres and Redis are nil when they are not configured.
type Services struct {
	Engine   *referee.Engine
	Postgres *sqlx.DB
	Redis    *redis.Client
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}

	if cfg.PostgresURL != "" {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		services.Postgres = postgres
	} else {
		slog.Info("Postgres is not configured, legal moves will not be stored")
	}

	if cfg.RedisURL != "" {
		redis, err := InitRedis(cfg.RedisURL)
		if err != nil {
			_ = services.Close()
			return nil, err
		}
		services.Redis = redis
	} else {
		slog.Info("Redis is not configured, legal moves will not be cached")
	}

	services.Engine = referee.New()

	return services, nil
}

// NewEngineOnly creates Services with only the engine, without external services.
func NewEngineOnly() *Services {
	return &Services{
		Engine: referee.New(),
	}
}

// Close shuts down the engine and closes all connections.
func (s *Services) Close() error {
	var errs []error

	if s.Engine != nil {
		if err := s.Engine.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("error shutting down engine: %w", err))
		}
	}

	if s.Postgres != nil {
		if err := s.Postgres.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing Postgres: %w", err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing Redis: %w", err))
		}
	}

	return errors.Join(errs...)
}
