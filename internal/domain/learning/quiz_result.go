package learning

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/neurotutor-backend/internal/domain/user"
)

type QuizResult struct {
	ID        uint                     `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID    uint                     `gorm:"index;not null" json:"quizId"`
	Quiz      *Quiz                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"-"`
	UserID    uint                     `gorm:"index;not null" json:"userId"`
	User      *user.User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Score     int                      `gorm:"not null;column:score" json:"score"`
	Answers   datatypes.JSONSlice[int] `gorm:"column:answers" json:"answers"`
	CreatedAt time.Time                `gorm:"not null" json:"createdAt"`
}

func (QuizResult) TableName() string { return "quiz_results" }

// ResultWithQuiz pairs a stored result with the questions it answered; it is the input
// shape for weakness analysis.
type ResultWithQuiz struct {
	QuizID    uint       `json:"quizId"`
	TopicName string     `json:"topicName,omitempty"`
	Score     int        `json:"score"`
	Answers   []int      `json:"answers"`
	Questions []Question `json:"questions"`
}

type WeaknessAnalysis struct {
	WeakAreas       map[string]string `json:"weakAreas"`
	Recommendations []string          `json:"recommendations"`
}
