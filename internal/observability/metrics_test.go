package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAPI(t *testing.T) {
	m := New()
	m.ObserveAPI("GET", "/api/topics", "200", 20*time.Millisecond)
	m.ObserveAPI("GET", "/api/topics", "200", 30*time.Millisecond)
	m.ObserveAPI("", "", "", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/api/topics", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("UNKNOWN", "unknown", "0")))

	m.ApiInflightInc()
	m.ApiInflightInc()
	m.ApiInflightDec()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiInflight))
}

func TestObserveGenerationAndHandler(t *testing.T) {
	m := New()
	m.ObserveGeneration("generate_quiz", "ok", time.Second)
	m.ObserveGeneration("generate_quiz", "invalid_shape", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.genRequests.WithLabelValues("generate_quiz", "invalid_shape")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `nt_generation_requests_total{operation="generate_quiz",outcome="ok"} 1`))
	assert.Contains(t, body, "go_goroutines")
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveGeneration("tutor_response", "ok", time.Millisecond)
	m.ApiInflightInc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestParseHeaders(t *testing.T) {
	assert.Nil(t, ParseHeaders(""))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, ParseHeaders(" a=1, b = 2 ,bad,=x"))
}
