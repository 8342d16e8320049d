package auth

import (
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type UserSessionRepo interface {
	Create(dbc dbctx.Context, sessions []*types.UserSession) ([]*types.UserSession, error)
	GetByTokenID(dbc dbctx.Context, tokenID string) (*types.UserSession, error)
	DeleteByTokenID(dbc dbctx.Context, tokenID string) error
	DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error)
}

type userSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSessionRepo(db *gorm.DB, baseLog *logger.Logger) UserSessionRepo {
	return &userSessionRepo{db: db, log: baseLog.With("repo", "UserSessionRepo")}
}

func (r *userSessionRepo) Create(dbc dbctx.Context, sessions []*types.UserSession) ([]*types.UserSession, error) {
	if len(sessions) == 0 {
		return []*types.UserSession{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetByTokenID returns nil, nil when the session does not exist.
func (r *userSessionRepo) GetByTokenID(dbc dbctx.Context, tokenID string) (*types.UserSession, error) {
	if tokenID == "" {
		return nil, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var rows []*types.UserSession
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("token_id = ?", tokenID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *userSessionRepo) DeleteByTokenID(dbc dbctx.Context, tokenID string) error {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("token_id = ?", tokenID).
		Delete(&types.UserSession{}).Error
}

func (r *userSessionRepo) DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("expires_at <= ?", now).
		Delete(&types.UserSession{})
	return res.RowsAffected, res.Error
}
