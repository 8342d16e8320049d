package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/neurotutor-backend/internal/http/handlers"
	httpMW "github.com/yungbote/neurotutor-backend/internal/http/middleware"
	"github.com/yungbote/neurotutor-backend/internal/observability"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string
	// Metrics is nil when metrics are disabled; /metrics is then not mounted.
	Metrics     *observability.Metrics
	TracingName string

	AuthHandler     *httpH.AuthHandler
	AuthMiddleware  *httpMW.AuthMiddleware
	UserHandler     *httpH.UserHandler
	TopicHandler    *httpH.TopicHandler
	QuizHandler     *httpH.QuizHandler
	AnalysisHandler *httpH.AnalysisHandler
	ChatHandler     *httpH.ChatHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingName != "" {
		r.Use(otelgin.Middleware(cfg.TracingName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/user", cfg.UserHandler.GetMe)
		}

		// Topics
		if cfg.TopicHandler != nil {
			protected.POST("/topics", cfg.TopicHandler.CreateTopic)
			protected.GET("/topics", cfg.TopicHandler.ListTopics)
			protected.DELETE("/topics/:id", cfg.TopicHandler.DeleteTopic)
		}

		// Quizzes
		if cfg.QuizHandler != nil {
			protected.POST("/quizzes", cfg.QuizHandler.CreateQuiz)
			protected.POST("/quiz-results", cfg.QuizHandler.SubmitResult)
		}

		// Analysis
		if cfg.AnalysisHandler != nil {
			protected.GET("/analysis", cfg.AnalysisHandler.GetAnalysis)
		}

		// Chat
		if cfg.ChatHandler != nil {
			protected.POST("/chat", cfg.ChatHandler.PostMessage)
			protected.GET("/topics/:id/chat", cfg.ChatHandler.ListHistory)
		}
	}

	return r
}
