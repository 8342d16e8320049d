package auth

import (
	"time"

	"github.com/yungbote/neurotutor-backend/internal/domain/user"
)

// UserSession backs one issued session token; deleting the row revokes the token.
type UserSession struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"userId"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	TokenID   string     `gorm:"uniqueIndex;not null;column:token_id" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;column:expires_at" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
}

func (UserSession) TableName() string { return "user_session" }

func (s *UserSession) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
