package app

import (
	"fmt"

	"github.com/yungbote/neurotutor-backend/internal/clients/redis"
	"github.com/yungbote/neurotutor-backend/internal/generation"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type Clients struct {
	// SessionCache is nil when REDIS_ADDR is unset.
	SessionCache redis.SessionCache
	Provider     generation.Provider
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var cache redis.SessionCache
	if cfg.RedisAddr != "" {
		c, err := redis.NewSessionCache(log, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis session cache: %w", err)
		}
		cache = c
	}

	// Openai
	provider, err := generation.NewOpenAIProvider(generation.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.OpenAITimeout,
	})
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return Clients{}, fmt.Errorf("init openai provider: %w", err)
	}

	return Clients{SessionCache: cache, Provider: provider}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SessionCache != nil {
		_ = c.SessionCache.Close()
	}
}
