package studyscheduler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studyscheduler "github.com/kamalesh73/smart--study-scheduler/internal/app/study-scheduler"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/session"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/jwt"
	"github.com/kamalesh73/smart--study-scheduler/internal/metrics"
	authservice "github.com/kamalesh73/smart--study-scheduler/internal/services/auth"
	"github.com/kamalesh73/smart--study-scheduler/internal/web"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newRouter(t *testing.T, ping error) http.Handler {
	t.Helper()

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metrics.New(reg).ObserveGeneration(metrics.ResultOK, time.Second)

	r := chi.NewRouter()
	studyscheduler.RegisterRoutes(r, slog.New(slog.NewTextHandler(io.Discard, nil)), studyscheduler.Deps{
		Auth:     authservice.NewAuthService(nil, jwt.NewJWTMaker("secret", time.Hour)),
		Sessions: session.NewManager("token", time.Hour, false, "secret"),
		Renderer: renderer,
		DB:       pingerFunc(func(context.Context) error { return ping }),
		Gatherer: reg,
	})
	return r
}

func TestRoutes_Public(t *testing.T) {
	r := newRouter(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "index", path: "/", wantStatus: http.StatusOK, wantBody: `action="/register"`},
		{name: "health", path: "/health", wantStatus: http.StatusOK, wantBody: `"status":"OK"`},
		{name: "metrics", path: "/metrics", wantStatus: http.StatusOK, wantBody: "study_scheduler_generations_total"},
		{name: "swagger doc", path: "/docs/doc.json", wantStatus: http.StatusOK, wantBody: `"/register"`},
		{name: "unknown", path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRoutes_ProtectedRedirect(t *testing.T) {
	r := newRouter(t, nil)

	for _, path := range []string{"/form", "/dashboard"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
		})
	}
}

func TestRoutes_FormWithValidSession(t *testing.T) {
	r := newRouter(t, nil)

	token, err := jwt.NewJWTMaker("secret", time.Hour).GenerateToken("uid-1", "Alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")
}

func TestRoutes_HealthDatabaseDown(t *testing.T) {
	r := newRouter(t, errors.New("refused"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
