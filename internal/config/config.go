// Package config holds client configuration loaded from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client settings.
type Config struct {
	// APIBaseURL is the InvestiPet API root. Default: http://localhost:8000.
	APIBaseURL string

	// PageSize is the lesson-list page size. Default: 6.
	PageSize int

	// Timeout is the HTTP transport timeout for a single request.
	// Default: 30s.
	Timeout time.Duration

	// LogFile is where structured logs go. Empty disables logging
	// (the TUI owns the terminal, so there is no stderr fallback).
	LogFile string
}

// FromEnv loads configuration from the environment, reading a .env file
// first when one is present in the working directory.
func FromEnv() Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	return Config{
		APIBaseURL: getenv("INVESTIPET_API_URL", "http://localhost:8000"),
		PageSize:   getenvInt("INVESTIPET_PAGE_SIZE", 6),
		Timeout:    getenvDuration("INVESTIPET_TIMEOUT", 30*time.Second),
		LogFile:    os.Getenv("INVESTIPET_LOG"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
