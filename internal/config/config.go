package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cexll/swe-mode/internal/github"
)

// Config holds all configuration for the swe mode dispatcher
type Config struct {
	// Server settings
	Port int

	// GitHub settings
	GitHubWebhookSecret string

	// Selection inputs
	TriggerPhrase string
	Prompt        string

	// Webhook filtering
	IgnoreBots bool
	DedupeTTL  time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnvInt("PORT", 8000),
		GitHubWebhookSecret: os.Getenv("GITHUB_WEBHOOK_SECRET"),
		TriggerPhrase:       getEnv("TRIGGER_PHRASE", github.DefaultTriggerPhrase),
		Prompt:              os.Getenv("PROMPT"),
		IgnoreBots:          getEnvBool("IGNORE_BOTS", true),
		DedupeTTL:           time.Duration(getEnvInt("DEDUPE_TTL_SECONDS", 43200)) * time.Second,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Inputs returns the selection inputs applied to every incoming event
func (c *Config) Inputs() github.Inputs {
	return github.Inputs{
		Prompt:        c.Prompt,
		TriggerPhrase: c.TriggerPhrase,
	}
}

// validate checks that all required configuration is present
func (c *Config) validate() error {
	if c.GitHubWebhookSecret == "" {
		return fmt.Errorf("GITHUB_WEBHOOK_SECRET is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DedupeTTL <= 0 {
		return fmt.Errorf("DEDUPE_TTL_SECONDS must be greater than 0")
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be 'console' or 'json')", c.LogFormat)
	}
	return nil
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as int with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
