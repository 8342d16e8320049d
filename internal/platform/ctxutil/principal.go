package ctxutil

import (
	"context"

	"github.com/yungbote/neurotutor-backend/internal/domain/auth"
)

type principalKey struct{}

func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal returns the principal stored by the auth middleware, if any.
func GetPrincipal(ctx context.Context) (auth.Principal, bool) {
	if ctx == nil {
		return auth.Principal{}, false
	}
	p, ok := ctx.Value(principalKey{}).(auth.Principal)
	if !ok || !p.Valid() {
		return auth.Principal{}, false
	}
	return p, true
}
