package chat

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type ChatMessageRepo interface {
	Create(dbc dbctx.Context, rows []*types.ChatMessage) ([]*types.ChatMessage, error)
	// ListByUserTopic returns the conversation in creation order.
	ListByUserTopic(dbc dbctx.Context, userID, topicID uint) ([]*types.ChatMessage, error)
	DeleteByTopicID(dbc dbctx.Context, topicID uint) error
}

type chatMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, log *logger.Logger) ChatMessageRepo {
	return &chatMessageRepo{db: db, log: log.With("repo", "ChatMessageRepo")}
}

func (r *chatMessageRepo) Create(dbc dbctx.Context, rows []*types.ChatMessage) ([]*types.ChatMessage, error) {
	if len(rows) == 0 {
		return []*types.ChatMessage{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *chatMessageRepo) ListByUserTopic(dbc dbctx.Context, userID, topicID uint) ([]*types.ChatMessage, error) {
	if userID == 0 || topicID == 0 {
		return nil, fmt.Errorf("missing user_id or topic_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	out := []*types.ChatMessage{}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *chatMessageRepo) DeleteByTopicID(dbc dbctx.Context, topicID uint) error {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("topic_id = ?", topicID).
		Delete(&types.ChatMessage{}).Error
}
