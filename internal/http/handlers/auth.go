package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurotutor-backend/internal/http/response"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/services"
)

type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

type AuthHandler struct {
	authService services.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService services.AuthService, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session_token"
	}
	return &AuthHandler{authService: authService, cookie: cookie}
}

type registerRequest struct {
	Username      string `json:"username" validate:"notblank"`
	Password      string `json:"password" validate:"required"`
	LearningGoals string `json:"learningGoals"`
}

type credentialsRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	user, token, err := ah.authService.Register(c.Request.Context(), services.RegisterInput{
		Username:      req.Username,
		Password:      req.Password,
		LearningGoals: req.LearningGoals,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	ah.setSessionCookie(c, token)
	response.RespondOK(c, gin.H{"user": user, "token": token})
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	user, token, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	ah.setSessionCookie(c, token)
	response.RespondOK(c, gin.H{"user": user, "token": token})
}

// POST /api/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	p, ok := ctxutil.GetPrincipal(c.Request.Context())
	if !ok {
		response.RespondAPIError(c, apierr.Unauthorized(nil))
		return
	}
	if err := ah.authService.Logout(c.Request.Context(), p); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ah.cookie.Name, "", -1, "/", ah.cookie.Domain, ah.cookie.Secure, true)
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ah.cookie.Name, token, int(ah.authService.SessionTTL().Seconds()), "/", ah.cookie.Domain, ah.cookie.Secure, true)
}
