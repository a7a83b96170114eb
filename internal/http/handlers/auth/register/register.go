// Package register реализует HTML-обработчик регистрации пользователя.
//
// Данные приходят из формы (name, email, password). При успехе выставляется
// сессионная cookie и выполняется редирект на форму предпочтений; при ошибке
// страница входа рендерится заново с понятным пользователю сообщением.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/kamalesh73/smart--study-scheduler/internal/http/response"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
	"github.com/kamalesh73/smart--study-scheduler/internal/web"
)

// Request — данные формы регистрации.
type Request struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=72"`
}

// Service регистрирует пользователя и возвращает сессионный токен.
type Service interface {
	Register(ctx context.Context, name, email, password string) (string, error)
}

// Renderer рендерит HTML-страницы.
type Renderer interface {
	Render(w http.ResponseWriter, name string, status int, data any) error
}

// Sessions выставляет сессионную cookie.
type Sessions interface {
	SetToken(w http.ResponseWriter, token string)
}

// Handler обрабатывает POST /register.
type Handler struct {
	log      *slog.Logger
	service  Service
	renderer Renderer
	sessions Sessions
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service, renderer Renderer, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		renderer: renderer,
		sessions: sessions,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.fail(w, log, http.StatusBadRequest, "Invalid form submission.", Request{})
		return
	}
	req := Request{
		Name:     r.PostForm.Get("name"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		msg := "Invalid registration data."
		if errors.As(err, &verrs) {
			msg = response.ValidationMessage(verrs)
		}
		h.fail(w, log, http.StatusBadRequest, msg, req)
		return
	}

	token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		log.Info("email already registered")
		h.fail(w, log, http.StatusConflict, "An account with this email already exists.", req)
		return
	case errors.Is(err, models.ErrValidation):
		log.Info("registration rejected", sl.Err(err))
		h.fail(w, log, http.StatusBadRequest, "Invalid registration data.", req)
		return
	case err != nil:
		log.Error("registration failed", sl.Err(err))
		h.fail(w, log, http.StatusInternalServerError, "Registration failed, please try again.", req)
		return
	}

	h.sessions.SetToken(w, token)
	log.Info("user registered")
	http.Redirect(w, r, "/form", http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, status int, msg string, req Request) {
	err := h.renderer.Render(w, web.PageIndex, status, web.IndexPage{
		Page:  web.Page{Error: msg},
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		log.Error("failed to render page", sl.Err(err))
		http.Error(w, msg, status)
	}
}
