// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"os"
)

type Config struct {
	Port        string
	DatabaseURL string
}

// Load reads the configuration. main loads .env beforehand via godotenv.
func Load() (Config, error) {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DB_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("internal/config: DB_URL environment variable is not set")
	}

	return cfg, nil
}
