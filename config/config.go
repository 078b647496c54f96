package config

import (
	"fmt"
	"os"
	"time"
)

const DefaultTokenTTL = 24 * time.Hour

// Config holds all deployment configuration, read from the environment.
type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	RedisAddr string
	RedisPass string
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads configuration from the environment. MONGOURI and JWT_KEY are
// required; everything else has a default. An empty REDIS_ADDR disables
// the property cache.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      os.Getenv("PORT"),
		MongoURI:  os.Getenv("MONGOURI"),
		DBName:    os.Getenv("DB"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASS"),
		JWTSecret: os.Getenv("JWT_KEY"),
		TokenTTL:  DefaultTokenTTL,
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGOURI not set in environment")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_KEY not set in environment")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBName == "" {
		cfg.DBName = "real_estate_hub"
	}

	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %v", ttlStr, err)
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}
