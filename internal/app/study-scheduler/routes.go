// Package studyscheduler собирает зависимости и маршруты веб-приложения.
package studyscheduler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-документации JSON API.
	_ "github.com/kamalesh73/smart--study-scheduler/docs"

	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/api/apilogin"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/api/apiregister"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/auth/login"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/auth/logout"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/auth/register"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/dashboard"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/health"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/home"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/schedule/form"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/handlers/schedule/generate"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/middlewarectx"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/session"
	authservice "github.com/kamalesh73/smart--study-scheduler/internal/services/auth"
	dashboardservice "github.com/kamalesh73/smart--study-scheduler/internal/services/dashboard"
	scheduleservice "github.com/kamalesh73/smart--study-scheduler/internal/services/schedule"
	"github.com/kamalesh73/smart--study-scheduler/internal/web"
)

// Deps — всё, что нужно обработчикам.
type Deps struct {
	Auth      *authservice.AuthService
	Schedule  *scheduleservice.Service
	Dashboard *dashboardservice.Service
	Sessions  *session.Manager
	Renderer  *web.Renderer
	DB        health.Pinger
	Gatherer  prometheus.Gatherer
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	// Открытые страницы
	r.Get("/", home.New(logger, d.Renderer, d.Sessions).ServeHTTP)
	r.Post("/register", register.New(logger, d.Auth, d.Renderer, d.Sessions).ServeHTTP)
	r.Post("/login", login.New(logger, d.Auth, d.Renderer, d.Sessions).ServeHTTP)
	r.Get("/logout", logout.New(logger, d.Sessions).ServeHTTP)

	// Страницы, требующие сессии
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(d.Auth, d.Sessions, logger))
		r.Get("/form", form.New(logger, d.Renderer).ServeHTTP)
		r.Post("/form", generate.New(logger, d.Schedule, d.Renderer).ServeHTTP)
		r.Get("/dashboard", dashboard.New(logger, d.Dashboard, d.Renderer, d.Sessions).ServeHTTP)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", apiregister.New(logger, d.Auth).ServeHTTP)
		r.Post("/login", apilogin.New(logger, d.Auth).ServeHTTP)
	})

	r.Get("/health", health.New(logger, d.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
}
