package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS legal_moves (
		board      TEXT     NOT NULL,
		player     SMALLINT NOT NULL,
		board_size SMALLINT NOT NULL,
		disc_count SMALLINT NOT NULL,
		moves      TEXT[]   NOT NULL,
		PRIMARY KEY (board, player)
	)
`

// InitPostgres initializes the database connection and creates the schema.
func InitPostgres(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return db, nil
}
