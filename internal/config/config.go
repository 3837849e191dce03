package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string
	Env  string

	RedisURL  string
	RedisPass string
	RedisDB   int

	JWTSecret string

	// ChainFile is where the seed chain lives. If the file is missing at
	// startup and ChainSize > 0, a fresh chain is generated and saved
	// there; if it exists it is loaded as-is, never regenerated.
	ChainFile string
	ChainSize int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		RedisURL:  getEnv("REDIS_URL", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		JWTSecret: getEnv("JWT_SECRET", ""),
		ChainFile: getEnv("CHAIN_FILE", "seed_chain.txt"),
		ChainSize: getEnvInt("CHAIN_SIZE", 10000),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-do-not-use-in-production"
	}

	if cfg.ChainSize < 1 {
		return nil, fmt.Errorf("CHAIN_SIZE must be at least 1, got %d", cfg.ChainSize)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
