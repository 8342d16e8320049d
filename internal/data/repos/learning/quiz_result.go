package learning

import (
	"gorm.io/gorm"

	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type QuizResultRepo interface {
	Create(dbc dbctx.Context, results []*types.QuizResult) ([]*types.QuizResult, error)
	ListByUser(dbc dbctx.Context, userID uint) ([]*types.QuizResult, error)
	DeleteByTopicID(dbc dbctx.Context, topicID uint) error
}

type quizResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizResultRepo(db *gorm.DB, baseLog *logger.Logger) QuizResultRepo {
	return &quizResultRepo{db: db, log: baseLog.With("repo", "QuizResultRepo")}
}

func (r *quizResultRepo) Create(dbc dbctx.Context, results []*types.QuizResult) ([]*types.QuizResult, error) {
	if len(results) == 0 {
		return []*types.QuizResult{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).Create(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizResultRepo) ListByUser(dbc dbctx.Context, userID uint) ([]*types.QuizResult, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	out := []*types.QuizResult{}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByTopicID removes every result recorded against any quiz of the topic.
func (r *quizResultRepo) DeleteByTopicID(dbc dbctx.Context, topicID uint) error {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	quizIDs := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Model(&types.Quiz{}).
		Select("id").
		Where("topic_id = ?", topicID)
	return txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("quiz_id IN (?)", quizIDs).
		Delete(&types.QuizResult{}).Error
}
