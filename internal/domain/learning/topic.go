package learning

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/neurotutor-backend/internal/domain/user"
)

type Topic struct {
	ID          uint                           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint                           `gorm:"index;not null" json:"userId"`
	User        *user.User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Name        string                         `gorm:"not null;column:name" json:"name"`
	Description string                         `gorm:"not null;column:description" json:"description"`
	Curriculum  datatypes.JSONType[Curriculum] `gorm:"column:curriculum" json:"curriculum"`
	CreatedAt   time.Time                      `gorm:"not null;index" json:"createdAt"`
}

func (Topic) TableName() string { return "topics" }
