package learning

import (
	"gorm.io/gorm"

	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type TopicRepo interface {
	Create(dbc dbctx.Context, topics []*types.Topic) ([]*types.Topic, error)
	GetByIDForUser(dbc dbctx.Context, userID, topicID uint) (*types.Topic, error)
	ListByUser(dbc dbctx.Context, userID uint) ([]*types.Topic, error)
	DeleteByID(dbc dbctx.Context, topicID uint) error
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "TopicRepo")}
}

func (r *topicRepo) Create(dbc dbctx.Context, topics []*types.Topic) ([]*types.Topic, error) {
	if len(topics) == 0 {
		return []*types.Topic{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).Create(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// GetByIDForUser returns nil, nil when the topic does not exist or is owned by someone else.
func (r *topicRepo) GetByIDForUser(dbc dbctx.Context, userID, topicID uint) (*types.Topic, error) {
	if userID == 0 || topicID == 0 {
		return nil, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var rows []*types.Topic
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("id = ? AND user_id = ?", topicID, userID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *topicRepo) ListByUser(dbc dbctx.Context, userID uint) ([]*types.Topic, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	out := []*types.Topic{}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *topicRepo) DeleteByID(dbc dbctx.Context, topicID uint) error {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("id = ?", topicID).
		Delete(&types.Topic{}).Error
}
