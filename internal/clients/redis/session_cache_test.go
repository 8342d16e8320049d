package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

func TestNewSessionCacheRequiresAddr(t *testing.T) {
	if _, err := NewSessionCache(logger.Nop(), Config{}); err == nil {
		t.Fatalf("expected error for missing address")
	}
}

func TestSessionCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	cache, err := NewSessionCache(logger.Nop(), Config{Addr: addr, Prefix: "test-session"})
	if err != nil {
		t.Fatalf("NewSessionCache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	ctx := context.Background()
	s := &types.UserSession{ID: 3, UserID: 9, TokenID: uuid.NewString(), ExpiresAt: time.Now().Add(time.Minute)}
	if err := cache.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := cache.Get(ctx, s.TokenID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.UserID != 9 || got.TokenID != s.TokenID {
		t.Fatalf("Get: unexpected session %+v", got)
	}
	if err := cache.Delete(ctx, s.TokenID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = cache.Get(ctx, s.TokenID)
	if err != nil || got != nil {
		t.Fatalf("Get after delete: got=%+v err=%v", got, err)
	}
}
