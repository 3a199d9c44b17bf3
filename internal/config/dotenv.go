package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files into the environment.
// Missing files are skipped, variables that are already set are not overwritten.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, filename := range filenames {
		err := godotenv.Load(filename)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No env file found", "file", filename)
			continue
		}
		if err != nil {
			return fmt.Errorf("error loading env file %s: %w", filename, err)
		}
	}

	return nil
}

// InitEnvironment loads the env files and then sets up the default logger,
// so LOG_LEVEL and LOG_FORMAT may come from an env file.
// An env file error is returned after the logger is set up.
func InitEnvironment(filenames ...string) error {
	err := LoadDotEnv(filenames...)

	SetLogLevel()

	return err
}
