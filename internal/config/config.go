// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the server binary needs to start.
type Config struct {
	// Port the HTTP server listens on.
	Port int
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string
	// PrettyLogs switches console-formatted logs on for local development.
	PrettyLogs bool
}

// Load reads configuration from the environment. DATABASE_URL is required;
// everything else has a sensible default.
func Load() (Config, error) {
	cfg := Config{
		Port:        8080,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		PrettyLogs:  os.Getenv("LOG_PRETTY") == "1",
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is not set")
	}
	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", p)
		}
		cfg.Port = port
	}
	return cfg, nil
}
