package domain

import (
	"github.com/yungbote/neurotutor-backend/internal/domain/auth"
	"github.com/yungbote/neurotutor-backend/internal/domain/chat"
	"github.com/yungbote/neurotutor-backend/internal/domain/learning"
	"github.com/yungbote/neurotutor-backend/internal/domain/user"
)

type (
	User        = user.User
	UserSession = auth.UserSession
	Principal   = auth.Principal

	Topic             = learning.Topic
	Curriculum        = learning.Curriculum
	CurriculumSection = learning.CurriculumSection
	Quiz              = learning.Quiz
	Question          = learning.Question
	Difficulty        = learning.Difficulty
	QuizResult        = learning.QuizResult
	ResultWithQuiz    = learning.ResultWithQuiz
	WeaknessAnalysis  = learning.WeaknessAnalysis

	ChatMessage = chat.ChatMessage
)

const (
	QuestionsPerQuiz   = learning.QuestionsPerQuiz
	OptionsPerQuestion = learning.OptionsPerQuestion
)

// Models lists every persisted model in dependency order for auto-migration.
func Models() []any {
	return []any{
		&user.User{},
		&auth.UserSession{},
		&learning.Topic{},
		&learning.Quiz{},
		&learning.QuizResult{},
		&chat.ChatMessage{},
	}
}
