package config

import (
	"fmt"
	"time"

	env "github.com/Netflix/go-env"
)

// Config holds all process configuration, loaded once at startup from the
// environment (after an optional .env file) and passed explicitly to the
// components that need it.
type Config struct {
	Port          int    `env:"PORT,default=3001"`
	DatabaseURL   string `env:"DB_URL,required=true"`
	RedisURL      string `env:"REDIS_URL"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN,default=http://localhost:5173"`
	LogLevel      string `env:"LOG_LEVEL,default=info"`

	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIModel   string        `env:"OPENAI_MODEL,default=gpt-4o"`
	OpenAITimeout time.Duration `env:"OPENAI_TIMEOUT,default=60s"`

	// StoreTimeout bounds each persistence call made on behalf of a single
	// request or inbound frame.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT,default=5s"`
}

// Load unmarshals configuration from the current environment.
func Load() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
