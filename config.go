package lexrain

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/whale4rain/lexRain/internal/store"
)

// Config holds client configuration.
type Config struct {
	// DBPath is the SQLite database location. Defaults to ~/.lexrain/lexrain.db.
	DBPath string

	// NewWordLimit caps how many unseen words a learn session pulls when the
	// caller does not specify a limit. Defaults to 20.
	NewWordLimit int

	// Debug enables verbose diagnostics in the CLI.
	Debug bool
}

// ConfigFromEnv builds a Config from environment variables, loading a .env
// file from the working directory first when one exists:
//
//	LEXRAIN_DB_PATH   database file location
//	LEXRAIN_NEW_LIMIT new-word limit for learn sessions
//	LEXRAIN_DEBUG     enable debug output (1/true)
func ConfigFromEnv() Config {
	_ = godotenv.Load()

	cfg := Config{
		DBPath: os.Getenv("LEXRAIN_DB_PATH"),
	}
	if v := os.Getenv("LEXRAIN_NEW_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.NewWordLimit = n
		}
	}
	if v := os.Getenv("LEXRAIN_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
	return cfg.WithDefaults()
}

// WithDefaults fills unset fields with their defaults.
func (c Config) WithDefaults() Config {
	if c.DBPath == "" {
		c.DBPath = store.DefaultDBPath()
	}
	if c.NewWordLimit == 0 {
		c.NewWordLimit = DefaultNewWordLimit
	}
	return c
}

// Validate checks the configuration, returning a *ValidationError on the
// first problem found.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return &ValidationError{Field: "db_path", Message: "must not be empty"}
	}
	if c.NewWordLimit < 1 {
		return &ValidationError{Field: "new_word_limit", Message: "must be at least 1"}
	}
	return nil
}
