package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

// SessionCache keeps live sessions in Redis keyed by token id. Entries expire with the session.
type SessionCache interface {
	Put(ctx context.Context, s *types.UserSession) error
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, tokenID string) (*types.UserSession, error)
	Delete(ctx context.Context, tokenID string) error
	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type sessionCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

type cachedSession struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewSessionCache(log *logger.Logger, cfg Config) (SessionCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "session"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sessionCache{
		log:    log.With("service", "RedisSessionCache"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (c *sessionCache) key(tokenID string) string {
	return c.prefix + ":" + tokenID
}

func (c *sessionCache) Put(ctx context.Context, s *types.UserSession) error {
	if s == nil || s.TokenID == "" {
		return fmt.Errorf("session with token id required")
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(cachedSession{ID: s.ID, UserID: s.UserID, ExpiresAt: s.ExpiresAt, CreatedAt: s.CreatedAt})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(s.TokenID), raw, ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, tokenID string) (*types.UserSession, error) {
	raw, err := c.rdb.Get(ctx, c.key(tokenID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cs cachedSession
	if err := json.Unmarshal(raw, &cs); err != nil {
		c.log.Warn("Dropping unreadable cached session", "error", err)
		_ = c.rdb.Del(ctx, c.key(tokenID)).Err()
		return nil, nil
	}
	return &types.UserSession{
		ID:        cs.ID,
		UserID:    cs.UserID,
		TokenID:   tokenID,
		ExpiresAt: cs.ExpiresAt,
		CreatedAt: cs.CreatedAt,
	}, nil
}

func (c *sessionCache) Delete(ctx context.Context, tokenID string) error {
	return c.rdb.Del(ctx, c.key(tokenID)).Err()
}

func (c *sessionCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *sessionCache) Close() error {
	return c.rdb.Close()
}
