package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurotutor-backend/internal/http/response"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
	"github.com/yungbote/neurotutor-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
	cookieName  string
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService, cookieName string) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService, cookieName: cookieName}
}

// RequireAuth resolves the session cookie (or a Bearer token) into a Principal and
// rejects the request with 401 before any handler runs when that fails.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := am.extractToken(c)
		if token == "" {
			response.AbortAPIError(c, apierr.Unauthorized(nil))
			return
		}
		p, err := am.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			am.log.Debug("Rejected session", "error", err)
			response.AbortAPIError(c, err)
			return
		}
		ctxutil.SetTraceUser(c.Request.Context(), p.UserID)
		c.Request = c.Request.WithContext(ctxutil.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

func (am *AuthMiddleware) extractToken(c *gin.Context) string {
	if am.cookieName != "" {
		if v, err := c.Cookie(am.cookieName); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
