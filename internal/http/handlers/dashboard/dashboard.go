// Package dashboard отдаёт страницу дашборда пользователя.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/kamalesh73/smart--study-scheduler/internal/http/middlewarectx"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
	"github.com/kamalesh73/smart--study-scheduler/internal/web"
)

// Service собирает модель дашборда.
type Service interface {
	Assemble(ctx context.Context, userUID string) (*models.Dashboard, error)
}

// Renderer рендерит HTML-страницы.
type Renderer interface {
	Render(w http.ResponseWriter, name string, status int, data any) error
}

// Sessions завершает сессию удалённого пользователя.
type Sessions interface {
	ClearToken(w http.ResponseWriter)
	AddFlash(w http.ResponseWriter, r *http.Request, msg string) error
}

// Handler обрабатывает GET /dashboard.
type Handler struct {
	log      *slog.Logger
	service  Service
	renderer Renderer
	sessions Sessions
}

// New создает Handler.
func New(log *slog.Logger, service Service, renderer Renderer, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		renderer: renderer,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	d, err := h.service.Assemble(r.Context(), id.UserUID)
	if errors.Is(err, models.ErrNotFound) {
		log.Warn("session user no longer exists", slog.String("user_uid", id.UserUID))
		h.sessions.ClearToken(w)
		if ferr := h.sessions.AddFlash(w, r, middlewarectx.SessionExpiredMessage); ferr != nil {
			log.Error("failed to save flash", sl.Err(ferr))
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		log.Error("failed to assemble dashboard", sl.Err(err))
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	if err := h.renderer.Render(w, web.PageDashboard, http.StatusOK, web.DashboardPage{
		Page:      web.Page{UserName: id.Name},
		Dashboard: d,
		Days:      web.GroupByDay(d.Schedule),
	}); err != nil {
		log.Error("failed to render page", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
