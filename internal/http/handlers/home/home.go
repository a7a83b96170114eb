// Package home отдаёт страницу входа и регистрации.
package home

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/web"
)

// Renderer рендерит HTML-страницы.
type Renderer interface {
	Render(w http.ResponseWriter, name string, status int, data any) error
}

// Flashes читает flash-сообщения.
type Flashes interface {
	PopFlash(w http.ResponseWriter, r *http.Request) string
}

// Handler обрабатывает GET /.
type Handler struct {
	log      *slog.Logger
	renderer Renderer
	flashes  Flashes
}

// New создает Handler.
func New(log *slog.Logger, renderer Renderer, flashes Flashes) *Handler {
	return &Handler{
		log:      log,
		renderer: renderer,
		flashes:  flashes,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	msg := h.flashes.PopFlash(w, r)
	if msg == "" {
		msg = r.URL.Query().Get("error")
	}

	if err := h.renderer.Render(w, web.PageIndex, http.StatusOK, web.IndexPage{
		Page: web.Page{Error: msg},
	}); err != nil {
		log.Error("failed to render page", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
