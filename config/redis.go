package config

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/realestatehub/backend/utils"
)

// InitRedis connects the property cache. Returns nil when no Redis address
// is configured, which disables caching.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		utils.Logger.Info("REDIS_ADDR not set, property cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		utils.Logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	utils.Logger.Info("Connected to Redis")
	return client
}
