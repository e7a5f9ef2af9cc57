package config

import (
	"fmt"
	"os"
)

// App-wide configuration. Database settings are read separately by infra/db.
type Config struct {
	Port      string // server port (default 8080)
	JWTSecret string // HS256 signing secret
	GoEnv     string // dev/prod
}

func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     os.Getenv("GO_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
