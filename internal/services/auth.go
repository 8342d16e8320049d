package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

type JWTClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username      string
	Password      string
	LearningGoals string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, string, error)
	Login(ctx context.Context, username, password string) (*types.User, string, error)
	Logout(ctx context.Context, p types.Principal) error
	// Authenticate verifies a session token and resolves the caller.
	Authenticate(ctx context.Context, token string) (types.Principal, error)
	SessionTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	users        repos.UserRepo
	sessions     SessionStore
	jwtSecretKey []byte
	sessionTTL   time.Duration
	now          func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	sessions SessionStore,
	jwtSecretKey string,
	sessionTTL time.Duration,
) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		users:        userRepo,
		sessions:     sessions,
		jwtSecretKey: []byte(jwtSecretKey),
		sessionTTL:   sessionTTL,
		now:          time.Now,
	}
}

func (as *authService) SessionTTL() time.Duration { return as.sessionTTL }

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, string, error) {
	username := strings.TrimSpace(in.Username)
	var fields []apierr.FieldError
	if len(username) < MinUsernameLength {
		fields = append(fields, apierr.FieldError{Field: "username", Message: fmt.Sprintf("must be at least %d characters", MinUsernameLength)})
	}
	switch {
	case len(in.Password) < MinPasswordLength:
		fields = append(fields, apierr.FieldError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength)})
	case len(in.Password) > MaxPasswordLength:
		fields = append(fields, apierr.FieldError{Field: "password", Message: fmt.Sprintf("must be at most %d bytes", MaxPasswordLength)})
	}
	if len(fields) > 0 {
		return nil, "", apierr.InvalidInput(fields...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		Username:      username,
		Password:      string(hash),
		LearningGoals: strings.TrimSpace(in.LearningGoals),
	}
	var token string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := as.users.UsernameExists(dbc, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return usernameTaken()
		}
		if _, err := as.users.Create(dbc, []*types.User{user}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return usernameTaken()
			}
			return fmt.Errorf("create user: %w", err)
		}
		tok, err := as.issueSession(dbc, user)
		if err != nil {
			return err
		}
		token = tok
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	as.log.Info("User registered", "user_id", user.ID)
	return user, token, nil
}

func usernameTaken() error {
	return apierr.Conflict("username_taken", errors.New("username already taken"))
}

func invalidCredentials() error {
	return apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid username or password"))
}

func (as *authService) Login(ctx context.Context, username, password string) (*types.User, string, error) {
	user, err := as.users.GetByUsername(dbctx.Context{Ctx: ctx}, strings.TrimSpace(username))
	if err != nil {
		return nil, "", fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, "", invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", invalidCredentials()
	}
	token, err := as.issueSession(dbctx.Context{Ctx: ctx}, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (as *authService) Logout(ctx context.Context, p types.Principal) error {
	if !p.Valid() || p.SessionID == "" {
		return apierr.Unauthorized(nil)
	}
	if err := as.sessions.Revoke(ctx, p.SessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (as *authService) issueSession(dbc dbctx.Context, user *types.User) (string, error) {
	now := as.now().UTC()
	sess := &types.UserSession{
		UserID:    user.ID,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(as.sessionTTL),
	}
	if err := as.sessions.Create(dbc, sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	claims := JWTClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        sess.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (as *authService) Authenticate(ctx context.Context, token string) (types.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return types.Principal{}, apierr.Unauthorized(errors.New("missing session"))
	}
	parsed, err := jwt.ParseWithClaims(token, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		return as.jwtSecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return types.Principal{}, apierr.Unauthorized(fmt.Errorf("invalid session token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return types.Principal{}, apierr.Unauthorized(errors.New("invalid session token"))
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return types.Principal{}, apierr.Unauthorized(errors.New("invalid subject in session token"))
	}

	sess, err := as.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		return types.Principal{}, fmt.Errorf("lookup session: %w", err)
	}
	if sess == nil || sess.UserID != uint(userID) || sess.Expired(as.now()) {
		return types.Principal{}, apierr.Unauthorized(errors.New("session expired or revoked"))
	}
	return types.Principal{
		UserID:    uint(userID),
		Username:  claims.Username,
		SessionID: claims.ID,
	}, nil
}
