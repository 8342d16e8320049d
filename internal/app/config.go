package app

import (
	"strings"
	"time"

	"github.com/yungbote/neurotutor-backend/internal/data/db"
	"github.com/yungbote/neurotutor-backend/internal/generation"
	"github.com/yungbote/neurotutor-backend/internal/platform/envutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr string

	JWTSecretKey string
	SessionTTL   time.Duration
	// SessionPruneInterval of zero disables the expired-session sweeper.
	SessionPruneInterval time.Duration
	CookieName           string
	CookieDomain         string
	CookieSecure         bool
	AllowedOrigins       []string

	DBDriver     string
	DatabaseURL  string
	MaxOpenConns int
	MaxIdleConns int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	OpenAITimeout  time.Duration
	GenMaxTokens   int
	GenTemperature float64

	MetricsEnabled bool
	OTelEnabled    bool
	OTelEndpoint   string
	OTelHeaders    string
	OTelInsecure   bool
	OTelSample     float64
	Environment    string
}

func LoadConfig(log *logger.Logger) Config {
	driver := strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres, log))
	defaultDSN := ""
	if driver == db.DriverSQLite {
		defaultDSN = "file:neurotutor.db?_foreign_keys=on"
	}

	return Config{
		HTTPAddr: envutil.String("HTTP_ADDR", ":8080", log),

		JWTSecretKey:         envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		SessionTTL:           envutil.Duration("SESSION_TTL", 7*24*time.Hour, log),
		SessionPruneInterval: envutil.Duration("SESSION_PRUNE_INTERVAL", time.Hour, log),
		CookieName:           envutil.String("COOKIE_NAME", "session_token", log),
		CookieDomain:         envutil.String("COOKIE_DOMAIN", "", log),
		CookieSecure:         envutil.Bool("COOKIE_SECURE", false, log),
		AllowedOrigins:       envutil.List("ALLOWED_ORIGINS", nil, log),

		DBDriver:     driver,
		DatabaseURL:  envutil.String("DATABASE_URL", defaultDSN, log),
		MaxOpenConns: envutil.Int("DB_MAX_OPEN_CONNS", 20, log),
		MaxIdleConns: envutil.Int("DB_MAX_IDLE_CONNS", 5, log),

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:       envutil.Int("REDIS_DB", 0, log),

		OpenAIAPIKey:   envutil.String("OPENAI_API_KEY", "", log),
		OpenAIModel:    envutil.String("OPENAI_MODEL", generation.DefaultModel, log),
		OpenAIBaseURL:  envutil.String("OPENAI_BASE_URL", "", log),
		OpenAITimeout:  envutil.Duration("OPENAI_TIMEOUT_SECONDS", 0, log),
		GenMaxTokens:   envutil.Int("GENERATION_MAX_TOKENS", 0, log),
		GenTemperature: envutil.Float("GENERATION_TEMPERATURE", 0.7, log),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false, log),
		OTelEnabled:    envutil.Bool("OTEL_ENABLED", false, log),
		OTelEndpoint:   envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
		OTelHeaders:    envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log),
		OTelInsecure:   envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
		OTelSample:     envutil.Float("OTEL_SAMPLER_RATIO", 0.1, log),
		Environment:    envutil.String("APP_ENV", "development", log),
	}
}
