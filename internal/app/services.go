package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/neurotutor-backend/internal/generation"
	"github.com/yungbote/neurotutor-backend/internal/observability"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
	"github.com/yungbote/neurotutor-backend/internal/services"
)

type Services struct {
	Sessions services.SessionStore
	Auth     services.AuthService
	User     services.UserService
	Topic    services.TopicService
	Quiz     services.QuizService
	Analysis services.AnalysisService
	Chat     services.ChatService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	opts := []generation.Option{generation.WithTemperature(cfg.GenTemperature)}
	if cfg.GenMaxTokens > 0 {
		opts = append(opts, generation.WithMaxTokens(cfg.GenMaxTokens))
	}
	if metrics != nil {
		opts = append(opts, generation.WithObserver(metrics))
	}
	gen, err := generation.NewGenerator(clients.Provider, log, opts...)
	if err != nil {
		return Services{}, fmt.Errorf("init generator: %w", err)
	}

	sessions := services.NewDBSessionStore(reposet.UserSession)
	if clients.SessionCache != nil {
		sessions = services.NewCachedSessionStore(sessions, clients.SessionCache, log)
	}

	return Services{
		Sessions: sessions,
		Auth:     services.NewAuthService(db, log, reposet.User, sessions, cfg.JWTSecretKey, cfg.SessionTTL),
		User:     services.NewUserService(log, reposet.User),
		Topic:    services.NewTopicService(db, log, reposet.User, reposet.Topic, reposet.Quiz, reposet.QuizResult, reposet.ChatMessage, gen),
		Quiz:     services.NewQuizService(db, log, reposet.Topic, reposet.Quiz, reposet.QuizResult, gen),
		Analysis: services.NewAnalysisService(log, reposet.Quiz, reposet.QuizResult, gen),
		Chat:     services.NewChatService(log, reposet.Topic, reposet.ChatMessage, gen),
	}, nil
}
