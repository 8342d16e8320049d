package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	UserSession repos.UserSessionRepo
	Topic       repos.TopicRepo
	Quiz        repos.QuizRepo
	QuizResult  repos.QuizResultRepo
	ChatMessage repos.ChatMessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		UserSession: repos.NewUserSessionRepo(db, log),
		Topic:       repos.NewTopicRepo(db, log),
		Quiz:        repos.NewQuizRepo(db, log),
		QuizResult:  repos.NewQuizResultRepo(db, log),
		ChatMessage: repos.NewChatMessageRepo(db, log),
	}
}
