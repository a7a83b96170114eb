// Package middlewarectx содержит HTTP middleware для проверки сессии.
//
// SessionMiddleware читает JWT из сессионной cookie и проверяет его.
// При успехе личность пользователя кладётся в контекст запроса; иначе
// cookie удаляется, а пользователь перенаправляется на "/" с flash-сообщением.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/kamalesh73/smart--study-scheduler/internal/http/session"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey — ключ личности пользователя в контексте.
const IdentityKey Key = "identity"

// SessionExpiredMessage показывается после неудачной проверки сессии.
const SessionExpiredMessage = "Please log in to continue."

// Verifier проверяет сессионный токен.
type Verifier interface {
	VerifySession(token string) (*models.Identity, error)
}

// WithIdentity возвращает контекст с личностью пользователя.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFrom достаёт личность пользователя из контекста.
func IdentityFrom(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*models.Identity)
	return id, ok && id != nil
}

// SessionMiddleware пропускает дальше только запросы с валидной сессией.
func SessionMiddleware(verifier Verifier, sessions *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			id, err := verifier.VerifySession(sessions.Token(r))
			if err != nil {
				log.Info("session rejected", sl.Err(err))
				sessions.ClearToken(w)
				if ferr := sessions.AddFlash(w, r, SessionExpiredMessage); ferr != nil {
					log.Error("failed to save flash", sl.Err(ferr))
				}
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
