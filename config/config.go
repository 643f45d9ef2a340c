package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the host configuration, loaded from environment variables.
type Config struct {
	// DatabaseURL selects the Postgres case store. When empty the host
	// falls back to the in-memory store.
	DatabaseURL string `env:"DATABASE_URL"`
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`
	// PaymentSigningSecret signs the checkout session tokens.
	PaymentSigningSecret string `env:"PAYMENT_SIGNING_SECRET"`
	// RulesFile optionally adds jurisdictions beyond the built-in set.
	RulesFile string `env:"RULES_FILE"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.PaymentSigningSecret == "" {
		return Config{}, fmt.Errorf("config: PAYMENT_SIGNING_SECRET is required")
	}
	return cfg, nil
}
