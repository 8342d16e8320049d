package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/neurotutor-backend/internal/http"
	httpH "github.com/yungbote/neurotutor-backend/internal/http/handlers"
	httpMW "github.com/yungbote/neurotutor-backend/internal/http/middleware"
	"github.com/yungbote/neurotutor-backend/internal/observability"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Topic    *httpH.TopicHandler
	Quiz     *httpH.QuizHandler
	Analysis *httpH.AnalysisHandler
	Chat     *httpH.ChatHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		Auth: httpH.NewAuthHandler(services.Auth, httpH.CookieConfig{
			Name:   cfg.CookieName,
			Domain: cfg.CookieDomain,
			Secure: cfg.CookieSecure,
		}),
		User:     httpH.NewUserHandler(services.User),
		Topic:    httpH.NewTopicHandler(services.Topic),
		Quiz:     httpH.NewQuizHandler(services.Quiz),
		Analysis: httpH.NewAnalysisHandler(services.Analysis),
		Chat:     httpH.NewChatHandler(services.Chat),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth, cfg.CookieName),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *http.Server {
	tracingName := ""
	if cfg.OTelEnabled {
		tracingName = "neurotutor-api"
	}
	return http.NewServer(http.RouterConfig{
		Log:             log,
		AllowedOrigins:  cfg.AllowedOrigins,
		Metrics:         metrics,
		TracingName:     tracingName,
		HealthHandler:   handlers.Health,
		AuthHandler:     handlers.Auth,
		AuthMiddleware:  middleware.Auth,
		UserHandler:     handlers.User,
		TopicHandler:    handlers.Topic,
		QuizHandler:     handlers.Quiz,
		AnalysisHandler: handlers.Analysis,
		ChatHandler:     handlers.Chat,
	})
}
