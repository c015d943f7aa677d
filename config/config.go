// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider backends selectable via TMT_PROVIDER.
const (
	ProviderOpenAI      = "openai"
	ProviderHuggingFace = "huggingface"
)

// Config holds the full service configuration.
type Config struct {
	Addr     string `env:"TMT_ADDR" envDefault:":5000"`
	MongoURI string `env:"MONGO_URI"`
	MongoDB  string `env:"MONGO_DB" envDefault:"translation"`

	Provider    string `env:"TMT_PROVIDER" envDefault:"huggingface"`
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	HFKey       string `env:"HUGGINGFACE_API_KEY"`
	HFModelID   string `env:"HF_MODEL_ID" envDefault:"facebook/nllb-200-distilled-600M"`

	RedisURL string `env:"REDIS_URL"`
	CacheTTL int    `env:"CACHE_TTL" envDefault:"3600"`

	ProviderTimeout  time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"15s"`
	ProviderRPM      int           `env:"PROVIDER_RPM" envDefault:"120"`
	ProviderRetries  int           `env:"PROVIDER_RETRIES" envDefault:"3"`
	SubscriberBuffer int           `env:"STREAM_BUFFER" envDefault:"16"`
	AllowedOrigins   []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses and validates configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the parsed configuration for required values.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("config: MONGO_URI is required")
	}
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return errors.New("config: OPENAI_API_KEY is required when TMT_PROVIDER=openai")
		}
	case ProviderHuggingFace:
		// HF works unauthenticated at reduced rate; no key required.
	default:
		return fmt.Errorf("config: invalid TMT_PROVIDER value %q (must be one of: %s, %s)",
			c.Provider, ProviderOpenAI, ProviderHuggingFace)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: invalid LOG_FORMAT value %q (must be text or json)", c.LogFormat)
	}
	return nil
}
