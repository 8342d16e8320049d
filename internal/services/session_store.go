package services

import (
	"context"
	"time"

	"github.com/yungbote/neurotutor-backend/internal/clients/redis"
	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

// SessionStore records issued sessions so a token is only honoured while its session exists.
type SessionStore interface {
	Create(dbc dbctx.Context, s *types.UserSession) error
	// Lookup returns nil, nil when the session is unknown.
	Lookup(ctx context.Context, tokenID string) (*types.UserSession, error)
	Revoke(ctx context.Context, tokenID string) error
	Prune(ctx context.Context, now time.Time) (int64, error)
}

type dbSessionStore struct {
	sessions repos.UserSessionRepo
}

func NewDBSessionStore(sessions repos.UserSessionRepo) SessionStore {
	return &dbSessionStore{sessions: sessions}
}

func (s *dbSessionStore) Create(dbc dbctx.Context, sess *types.UserSession) error {
	_, err := s.sessions.Create(dbc, []*types.UserSession{sess})
	return err
}

func (s *dbSessionStore) Lookup(ctx context.Context, tokenID string) (*types.UserSession, error) {
	return s.sessions.GetByTokenID(dbctx.Context{Ctx: ctx}, tokenID)
}

func (s *dbSessionStore) Revoke(ctx context.Context, tokenID string) error {
	return s.sessions.DeleteByTokenID(dbctx.Context{Ctx: ctx}, tokenID)
}

func (s *dbSessionStore) Prune(ctx context.Context, now time.Time) (int64, error) {
	return s.sessions.DeleteExpired(dbctx.Context{Ctx: ctx}, now)
}

// cachedSessionStore fronts another store with the Redis session cache. The inner store
// stays the source of truth; cache failures degrade to inner lookups.
type cachedSessionStore struct {
	inner SessionStore
	cache redis.SessionCache
	log   *logger.Logger
}

func NewCachedSessionStore(inner SessionStore, cache redis.SessionCache, baseLog *logger.Logger) SessionStore {
	return &cachedSessionStore{
		inner: inner,
		cache: cache,
		log:   baseLog.With("service", "CachedSessionStore"),
	}
}

func (s *cachedSessionStore) Create(dbc dbctx.Context, sess *types.UserSession) error {
	if err := s.inner.Create(dbc, sess); err != nil {
		return err
	}
	if err := s.cache.Put(dbc.Ctx, sess); err != nil {
		s.log.Warn("Session cache write failed", "error", err)
	}
	return nil
}

func (s *cachedSessionStore) Lookup(ctx context.Context, tokenID string) (*types.UserSession, error) {
	cached, err := s.cache.Get(ctx, tokenID)
	if err != nil {
		s.log.Warn("Session cache read failed", "error", err)
	}
	if cached != nil {
		return cached, nil
	}
	sess, err := s.inner.Lookup(ctx, tokenID)
	if err != nil || sess == nil {
		return sess, err
	}
	if err := s.cache.Put(ctx, sess); err != nil {
		s.log.Warn("Session cache fill failed", "error", err)
	}
	return sess, nil
}

func (s *cachedSessionStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.inner.Revoke(ctx, tokenID); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, tokenID); err != nil {
		s.log.Warn("Session cache evict failed", "error", err)
	}
	return nil
}

func (s *cachedSessionStore) Prune(ctx context.Context, now time.Time) (int64, error) {
	return s.inner.Prune(ctx, now)
}
