package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	// Storage selects the ledger/journal backend: "memory" or "postgres".
	Storage string
	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE", StorageMemory)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:  viper.GetString("PGSQL_URL"),
		Port:         viper.GetString("PORT"),
		IsProduction: viper.GetBool("IS_PRODUCTION"),
		Storage:      viper.GetString("STORAGE"),
		RateLimit:    viper.GetString("RATE_LIMIT"),
	}

	if cfg.Storage == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: STORAGE is postgres but PGSQL_URL environment variable is not set.")
	}

	return cfg, nil
}
