package config

import (
	"os"
	"strconv"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	DatabaseURL string

	ListenAddr string

	// MaxUsage is the analysis quota ceiling per (IP, fingerprint)
	// identity. Once a client reaches it, /analyze is denied.
	MaxUsage int

	// OpenAIAPIKey enables the remote classifier. If empty, every
	// request is served by the keyword classifier instead.
	OpenAIAPIKey string

	// OpenAIModel is the chat-completions model used for analysis.
	OpenAIModel string

	// OpenAITimeoutSeconds bounds the remote classification round-trip.
	// A timed-out call is treated as a classifier failure and falls
	// back to the keyword classifier.
	OpenAITimeoutSeconds int
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	cfg := &Config{
		DatabaseURL:          os.Getenv("APP_DATABASE_URL"),
		ListenAddr:           getenv("APP_LISTEN_ADDR", ":8080"),
		MaxUsage:             7,
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:          getenv("OPENAI_MODEL", "gpt-4o"),
		OpenAITimeoutSeconds: 20,
	}

	if v := os.Getenv("APP_MAX_USAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxUsage = n
		}
	}
	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.OpenAITimeoutSeconds = n
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
