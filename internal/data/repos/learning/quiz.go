package learning

import (
	"gorm.io/gorm"

	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type QuizRepo interface {
	Create(dbc dbctx.Context, quizzes []*types.Quiz) ([]*types.Quiz, error)
	GetByIDForUser(dbc dbctx.Context, userID, quizID uint) (*types.Quiz, error)
	GetByIDs(dbc dbctx.Context, quizIDs []uint) ([]*types.Quiz, error)
	DeleteByTopicID(dbc dbctx.Context, topicID uint) error
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) Create(dbc dbctx.Context, quizzes []*types.Quiz) ([]*types.Quiz, error) {
	if len(quizzes) == 0 {
		return []*types.Quiz{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).Create(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// GetByIDForUser returns nil, nil when the quiz does not exist or belongs to another user.
func (r *quizRepo) GetByIDForUser(dbc dbctx.Context, userID, quizID uint) (*types.Quiz, error) {
	if userID == 0 || quizID == 0 {
		return nil, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var rows []*types.Quiz
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("id = ? AND user_id = ?", quizID, userID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *quizRepo) GetByIDs(dbc dbctx.Context, quizIDs []uint) ([]*types.Quiz, error) {
	out := []*types.Quiz{}
	if len(quizIDs) == 0 {
		return out, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Preload("Topic").
		Where("id IN ?", quizIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *quizRepo) DeleteByTopicID(dbc dbctx.Context, topicID uint) error {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("topic_id = ?", topicID).
		Delete(&types.Quiz{}).Error
}
