// Package login реализует HTML-обработчик входа пользователя.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
	"github.com/kamalesh73/smart--study-scheduler/internal/web"
)

const invalidCredentials = "Invalid email or password."

// Request — данные формы входа.
type Request struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Service проверяет учётные данные и возвращает сессионный токен.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Renderer рендерит HTML-страницы.
type Renderer interface {
	Render(w http.ResponseWriter, name string, status int, data any) error
}

// Sessions выставляет сессионную cookie.
type Sessions interface {
	SetToken(w http.ResponseWriter, token string)
}

// Handler обрабатывает POST /login.
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
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.fail(w, log, http.StatusBadRequest, "Invalid form submission.", "")
		return
	}
	req := Request{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		h.fail(w, log, http.StatusBadRequest, "Email and password are required.", req.Email)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrInvalidCredentials):
		log.Info("login rejected", sl.Err(err))
		h.fail(w, log, http.StatusUnauthorized, invalidCredentials, req.Email)
		return
	case err != nil:
		log.Error("login failed", sl.Err(err))
		h.fail(w, log, http.StatusInternalServerError, "Login failed, please try again.", req.Email)
		return
	}

	h.sessions.SetToken(w, token)
	log.Info("login success")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, status int, msg, email string) {
	err := h.renderer.Render(w, web.PageIndex, status, web.IndexPage{
		Page:  web.Page{Error: msg},
		Email: email,
	})
	if err != nil {
		log.Error("failed to render page", sl.Err(err))
		http.Error(w, msg, status)
	}
}
