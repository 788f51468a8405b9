package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading an
// optional .env file first. Recognized variables:
//
//	SERVER_ADDRESS  — HTTP bind address (e.g. ":8080")
//	DATABASE_DSN    — PostgreSQL DSN
//	RANDOM_SECRET   — token-signing secret
//	TOKEN_VALIDITY  — token lifetime as a Go duration (e.g. "20h")
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("RANDOM_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
}
