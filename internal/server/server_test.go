package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JustJay7/nyaya-mitra/internal/cache"
	"github.com/JustJay7/nyaya-mitra/internal/cases"
	"github.com/JustJay7/nyaya-mitra/internal/config"
	"github.com/JustJay7/nyaya-mitra/internal/database"
	"github.com/JustJay7/nyaya-mitra/internal/judgment"
	"github.com/JustJay7/nyaya-mitra/internal/metrics"
	"github.com/JustJay7/nyaya-mitra/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, origins []string) (*Server, *metrics.Metrics) {
	t.Helper()

	db, err := database.OpenMemory()
	require.NoError(t, err)

	cfg := &config.Config{
		LogLevel:           "error",
		StaticDir:          t.TempDir(),
		CORSAllowedOrigins: origins,
	}

	gen, err := judgment.NewOpenAIGenerator(judgment.Config{APIKey: "unused", BaseURL: "http://127.0.0.1:0"})
	require.NoError(t, err)

	caseCache := cache.NewCache(10, time.Minute)
	m := metrics.New()
	log := logger.NewNop()
	svc := cases.NewService(database.NewCaseStore(db), gen, cases.Options{Cache: caseCache, Logger: log, Metrics: m})

	return New(cfg, db, svc, caseCache, m, log), m
}

func TestCORSReflectsAnyOrigin(t *testing.T) {
	srv, _ := newTestServer(t, []string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/api/cases", nil)
	req.Header.Set("Origin", "https://nyaya-mitra.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "https://nyaya-mitra.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSAllowList(t *testing.T) {
	srv, _ := newTestServer(t, []string{"https://allowed.example"})

	for origin, want := range map[string]string{
		"https://allowed.example": "https://allowed.example",
		"https://evil.example":    "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Header().Get("Access-Control-Allow-Origin"), origin)
	}
}

func TestMetricsMiddlewareRecordsRoute(t *testing.T) {
	srv, m := newTestServer(t, []string{"*"})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/cases", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cases", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/api/cases", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/cases", "200")))
}

func TestGenerateJudgmentUpstreamFailure(t *testing.T) {
	srv, m := newTestServer(t, []string{"*"})

	w := httptest.NewRecorder()
	body := `{"caseTitle":"Smith v. Jones","partiesInvolved":"A, B","caseDescription":"Contract dispute over delivery delay."}`
	req := httptest.NewRequest(http.MethodPost, "/api/cases", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created database.Case
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.ID

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/cases/"+id+"/generate-judgment", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate judgment.")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JudgmentOutcome.WithLabelValues("error")))
}
