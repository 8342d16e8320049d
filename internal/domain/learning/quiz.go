package learning

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/neurotutor-backend/internal/domain/user"
)

const (
	QuestionsPerQuiz   = 5
	OptionsPerQuestion = 4
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID        uint                          `gorm:"primaryKey;autoIncrement" json:"id"`
	TopicID   uint                          `gorm:"index;not null" json:"topicId"`
	Topic     *Topic                        `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"-"`
	UserID    uint                          `gorm:"index;not null" json:"userId"`
	User      *user.User                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Questions datatypes.JSONSlice[Question] `gorm:"column:questions" json:"questions"`
	CreatedAt time.Time                     `gorm:"not null" json:"createdAt"`
}

func (Quiz) TableName() string { return "quizzes" }
