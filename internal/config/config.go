// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string
	DBPath      string

	// JWTSecret is a base64-encoded signing secret. Empty means load or
	// generate one through the persisted slot store.
	JWTSecret string
	TokenTTL  time.Duration

	// DemoEmail and DemoPassword are the credential pair the simulated
	// backend accepts.
	DemoEmail    string
	DemoPassword string

	// LatencyScale multiplies the simulated backend delays. 0 disables
	// them entirely.
	LatencyScale float64

	// SeedDemoData loads the demo session and agent at startup.
	SeedDemoData bool

	// LoginRatePerMinute bounds credential attempts per client IP.
	LoginRatePerMinute int
	LoginRateBurst     int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		FrontendURL:        getEnv("FRONTEND_URL", ""),
		DBPath:             getEnv("DB_PATH", "./data/agentdesk.db"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 24*time.Hour),
		DemoEmail:          getEnv("DEMO_EMAIL", "test@example.com"),
		DemoPassword:       getEnv("DEMO_PASSWORD", "password"),
		LatencyScale:       getEnvFloat("LATENCY_SCALE", 1.0),
		SeedDemoData:       getEnvBool("SEED_DEMO_DATA", true),
		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 10),
		LoginRateBurst:     getEnvInt("LOGIN_RATE_BURST", 5),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be > 0")
	}
	if c.DemoEmail == "" || c.DemoPassword == "" {
		return fmt.Errorf("DEMO_EMAIL and DEMO_PASSWORD cannot be empty")
	}
	if c.LatencyScale < 0 {
		return fmt.Errorf("LATENCY_SCALE cannot be negative")
	}
	if c.LoginRatePerMinute <= 0 || c.LoginRateBurst <= 0 {
		return fmt.Errorf("login rate limits must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
