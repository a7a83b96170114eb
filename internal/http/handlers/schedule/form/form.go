// Package form отдаёт форму учебных предпочтений.
package form

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/kamalesh73/smart--study-scheduler/internal/http/middlewarectx"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/web"
)

// Renderer рендерит HTML-страницы.
type Renderer interface {
	Render(w http.ResponseWriter, name string, status int, data any) error
}

// Handler обрабатывает GET /form.
type Handler struct {
	log      *slog.Logger
	renderer Renderer
}

// New создает Handler.
func New(log *slog.Logger, renderer Renderer) *Handler {
	return &Handler{
		log:      log,
		renderer: renderer,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.form"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var page web.FormPage
	if id, ok := middlewarectx.IdentityFrom(r.Context()); ok {
		page.UserName = id.Name
	}
	if err := h.renderer.Render(w, web.PageForm, http.StatusOK, page); err != nil {
		log.Error("failed to render page", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
