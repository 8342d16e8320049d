package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/neurotutor-backend/internal/data/repos/auth"
	"github.com/yungbote/neurotutor-backend/internal/data/repos/chat"
	"github.com/yungbote/neurotutor-backend/internal/data/repos/learning"
	"github.com/yungbote/neurotutor-backend/internal/data/repos/user"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserSessionRepo = auth.UserSessionRepo

type TopicRepo = learning.TopicRepo
type QuizRepo = learning.QuizRepo
type QuizResultRepo = learning.QuizResultRepo

type ChatMessageRepo = chat.ChatMessageRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserSessionRepo(db *gorm.DB, baseLog *logger.Logger) UserSessionRepo {
	return auth.NewUserSessionRepo(db, baseLog)
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return learning.NewTopicRepo(db, baseLog)
}
func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return learning.NewQuizRepo(db, baseLog)
}
func NewQuizResultRepo(db *gorm.DB, baseLog *logger.Logger) QuizResultRepo {
	return learning.NewQuizResultRepo(db, baseLog)
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	return chat.NewChatMessageRepo(db, baseLog)
}
