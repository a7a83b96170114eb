// Package logout завершает сессию пользователя.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
)

// Sessions удаляет сессионную cookie.
type Sessions interface {
	ClearToken(w http.ResponseWriter)
}

// Handler обрабатывает GET /logout.
type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

// New создает Handler.
func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	h.sessions.ClearToken(w)
	h.log.Info("logged out",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
