package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	"github.com/yungbote/neurotutor-backend/internal/data/repos/testutil"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
)

const testSecret = "test-secret-key"

func newAuthService(t *testing.T, store func(repos.UserSessionRepo) SessionStore) (AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	var sessions SessionStore = NewDBSessionStore(env.sessions)
	if store != nil {
		sessions = store(env.sessions)
	}
	return NewAuthService(env.db, env.log, env.users, sessions, testSecret, time.Hour), env
}

func TestRegisterIssuesUsableSession(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	name := testutil.Username("reg")

	user, token, err := svc.Register(ctx, RegisterInput{Username: name, Password: "secret1", LearningGoals: "Learn chess"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, name, user.Username)
	assert.NotEqual(t, "secret1", user.Password)

	p, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, name, p.Username)
	assert.NotEmpty(t, p.SessionID)
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		in     RegisterInput
		fields []string
	}{
		{"short username and password", RegisterInput{Username: "ab", Password: "123"}, []string{"username", "password"}},
		{"blank username", RegisterInput{Username: "   ", Password: "secret1"}, []string{"username"}},
		{"password over bcrypt limit", RegisterInput{Username: "longpass", Password: strings.Repeat("p", 80)}, []string{"password"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, env := newAuthService(t, nil)

			_, _, err := svc.Register(context.Background(), tc.in)
			ae := apierr.From(err)
			require.Equal(t, http.StatusBadRequest, ae.Status)
			require.Len(t, ae.Fields, len(tc.fields))
			for i, f := range tc.fields {
				assert.Equal(t, f, ae.Fields[i].Field)
			}

			var count int64
			require.NoError(t, env.db.Model(&types.User{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestRegisterAcceptsPasswordAtBcryptLimit(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	_, token, err := svc.Register(context.Background(), RegisterInput{
		Username: testutil.Username("limit"),
		Password: strings.Repeat("p", MaxPasswordLength),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, env := newAuthService(t, nil)
	ctx := context.Background()
	name := testutil.Username("dup")

	_, _, err := svc.Register(ctx, RegisterInput{Username: name, Password: "secret1"})
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, RegisterInput{Username: name, Password: "secret2"})
	ae := apierr.From(err)
	require.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, "username_taken", ae.Code)

	var count int64
	require.NoError(t, env.db.Model(&types.User{}).Where("username = ?", name).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	name := testutil.Username("login")
	_, _, err := svc.Register(ctx, RegisterInput{Username: name, Password: "secret1"})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, name, "secret1")
	require.NoError(t, err)
	assert.Equal(t, name, user.Username)
	_, err = svc.Authenticate(ctx, token)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, name, "wrong-password")
	ae := apierr.From(err)
	require.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "invalid_credentials", ae.Code)

	_, _, err = svc.Login(ctx, "nobody-"+name, "secret1")
	assert.Equal(t, "invalid_credentials", apierr.From(err).Code)
}

func TestLoginTrimsUsername(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	name := testutil.Username("trim")
	_, _, err := svc.Register(ctx, RegisterInput{Username: "  " + name, Password: "secret1"})
	require.NoError(t, err)

	user, _, err := svc.Login(ctx, " "+name+" ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, name, user.Username)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	_, token, err := svc.Register(ctx, RegisterInput{Username: testutil.Username("out"), Password: "secret1"})
	require.NoError(t, err)

	p, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, p))

	_, err = svc.Authenticate(ctx, token)
	assert.Equal(t, http.StatusUnauthorized, apierr.From(err).Status)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc, env := newAuthService(t, nil)
	ctx := context.Background()
	_, token, err := svc.Register(ctx, RegisterInput{Username: testutil.Username("bad"), Password: "secret1"})
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage", token + "x"} {
		_, err := svc.Authenticate(ctx, tok)
		assert.Equal(t, http.StatusUnauthorized, apierr.From(err).Status, "token %q", tok)
	}

	other := NewAuthService(env.db, env.log, env.users, NewDBSessionStore(env.sessions), "another-secret", time.Hour)
	_, err = other.Authenticate(ctx, token)
	assert.Equal(t, http.StatusUnauthorized, apierr.From(err).Status)
}

func TestAuthenticateRejectsExpiredSession(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	_, token, err := svc.Register(ctx, RegisterInput{Username: testutil.Username("exp"), Password: "secret1"})
	require.NoError(t, err)

	svc.(*authService).now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Authenticate(ctx, token)
	assert.Equal(t, http.StatusUnauthorized, apierr.From(err).Status)
}

func TestDBSessionStorePrune(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedUser(t, "")
	store := NewDBSessionStore(env.sessions)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Create(env.dbc(), &types.UserSession{UserID: p.UserID, TokenID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, store.Create(env.dbc(), &types.UserSession{UserID: p.UserID, TokenID: "live", ExpiresAt: now.Add(time.Hour)}))

	n, err := store.Prune(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := store.Lookup(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = store.Lookup(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, got)
}

type fakeSessionCache struct {
	mu      sync.Mutex
	items   map[string]*types.UserSession
	gets       int
	hits       int
	failGet    bool
	failDelete bool
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{items: map[string]*types.UserSession{}}
}

func (f *fakeSessionCache) Put(_ context.Context, s *types.UserSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.items[s.TokenID] = &cp
	return nil
}

func (f *fakeSessionCache) Get(_ context.Context, tokenID string) (*types.UserSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.failGet {
		return nil, errors.New("cache down")
	}
	s, ok := f.items[tokenID]
	if !ok {
		return nil, nil
	}
	f.hits++
	cp := *s
	return &cp, nil
}

func (f *fakeSessionCache) Delete(_ context.Context, tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("cache down")
	}
	delete(f.items, tokenID)
	return nil
}

func (f *fakeSessionCache) Ping(context.Context) error { return nil }

func (f *fakeSessionCache) Close() error { return nil }

func TestCachedSessionStore(t *testing.T) {
	cache := newFakeSessionCache()
	svc, env := newAuthService(t, func(r repos.UserSessionRepo) SessionStore {
		return NewCachedSessionStore(NewDBSessionStore(r), cache, testutil.Logger(t))
	})
	ctx := context.Background()

	_, token, err := svc.Register(ctx, RegisterInput{Username: testutil.Username("cache"), Password: "secret1"})
	require.NoError(t, err)
	require.Len(t, cache.items, 1)

	p, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	cache.failGet = true
	_, err = svc.Authenticate(ctx, token)
	require.NoError(t, err)
	cache.failGet = false

	require.NoError(t, svc.Logout(ctx, p))
	assert.Empty(t, cache.items)
	_, err = svc.Authenticate(ctx, token)
	assert.Equal(t, http.StatusUnauthorized, apierr.From(err).Status)

	var count int64
	require.NoError(t, env.db.Model(&types.UserSession{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCachedSessionStoreRevokeIgnoresCacheFailure(t *testing.T) {
	cache := newFakeSessionCache()
	svc, env := newAuthService(t, func(r repos.UserSessionRepo) SessionStore {
		return NewCachedSessionStore(NewDBSessionStore(r), cache, testutil.Logger(t))
	})
	ctx := context.Background()

	_, token, err := svc.Register(ctx, RegisterInput{Username: testutil.Username("evict"), Password: "secret1"})
	require.NoError(t, err)
	p, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)

	cache.failDelete = true
	require.NoError(t, svc.Logout(ctx, p))

	var count int64
	require.NoError(t, env.db.Model(&types.UserSession{}).Count(&count).Error)
	assert.Zero(t, count)
}
