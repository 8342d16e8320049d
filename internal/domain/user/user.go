package user

import "time"

type User struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Password      string    `gorm:"not null;column:password" json:"-"`
	LearningGoals string    `gorm:"column:learning_goals" json:"learningGoals,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
}

func (User) TableName() string { return "users" }
