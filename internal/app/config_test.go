package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yungbote/neurotutor-backend/internal/data/db"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DATABASE_URL", "OPENAI_MODEL", "SESSION_TTL", "COOKIE_NAME", "ALLOWED_ORIGINS", "HTTP_ADDR"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.Nop())

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, db.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "session_token", cfg.CookieName)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.InDelta(t, 0.7, cfg.GenTemperature, 1e-9)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_TTL", "3600")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OPENAI_TIMEOUT_SECONDS", "45")
	t.Setenv("METRICS_ENABLED", "true")

	cfg := LoadConfig(logger.Nop())
	assert.Equal(t, db.DriverSQLite, cfg.DBDriver)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 45*time.Second, cfg.OpenAITimeout)
	assert.True(t, cfg.MetricsEnabled)
}
