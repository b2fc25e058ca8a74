// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel = "MATAMAZON_LOG_LEVEL"
	EnvDB       = "MATAMAZON_DB"
)

type Config struct {
	LogLevel slog.Level
	DB       string // default for --db; empty disables persistence
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding ones already set. A missing file is not an
// error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds a Config from the environment. An unrecognized log level
// falls back to info.
func Load() Config {
	level, err := ParseLevel(getenv(EnvLogLevel, "info"))
	if err != nil {
		level = slog.LevelInfo
	}
	return Config{
		LogLevel: level,
		DB:       getenv(EnvDB, ""),
	}
}

// ParseLevel maps debug|info|warn|error (any case) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
