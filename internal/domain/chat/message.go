package chat

import (
	"time"

	"github.com/yungbote/neurotutor-backend/internal/domain/learning"
	"github.com/yungbote/neurotutor-backend/internal/domain/user"
)

type ChatMessage struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint            `gorm:"not null;index:idx_chat_user_topic,priority:1" json:"userId"`
	User      *user.User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	TopicID   uint            `gorm:"not null;index:idx_chat_user_topic,priority:2" json:"topicId"`
	Topic     *learning.Topic `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"-"`
	Message   string          `gorm:"type:text;not null;column:message" json:"message"`
	IsAI      bool            `gorm:"not null;default:false;column:is_ai" json:"isAi"`
	CreatedAt time.Time       `gorm:"not null;index" json:"createdAt"`
}

func (ChatMessage) TableName() string { return "chat_history" }

// Role maps a stored message onto a chat-completion role.
func (m *ChatMessage) Role() string {
	if m.IsAI {
		return "assistant"
	}
	return "user"
}
