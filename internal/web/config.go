package web

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the web server's environment configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"CARTOGRAPH_WEB_ADDR" envDefault:":8080"`
	// JoinAddr is the advertised TCP game address encoded into the join
	// QR code. Empty disables the /join/qr endpoint.
	JoinAddr string `env:"CARTOGRAPH_JOIN_ADDR"`
}

// ConfigFromEnv loads configuration from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
