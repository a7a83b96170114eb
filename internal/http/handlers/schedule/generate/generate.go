// Package generate обрабатывает отправку формы предпочтений: генерирует
// расписание и атомарно сохраняет его.
//
// Ошибки валидации возвращают форму с сообщением (400). Любая ошибка генерации
// или сохранения даёт 500 с фиксированным текстом; подробности только в логе.
package generate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/kamalesh73/smart--study-scheduler/internal/http/middlewarectx"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/response"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
	"github.com/kamalesh73/smart--study-scheduler/internal/web"
)

// FailureMessage — тело ответа при ошибке генерации или сохранения.
const FailureMessage = "Failed to generate schedule"

// Service генерирует и сохраняет расписание.
type Service interface {
	Generate(ctx context.Context, userUID string, prefs models.Preferences) error
}

// Renderer рендерит HTML-страницы.
type Renderer interface {
	Render(w http.ResponseWriter, name string, status int, data any) error
}

// Handler обрабатывает POST /form.
type Handler struct {
	log      *slog.Logger
	service  Service
	renderer Renderer
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service, renderer Renderer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		renderer: renderer,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.generate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	log = log.With(slog.String("user_uid", id.UserUID))

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.fail(w, log, id.Name, "Invalid form submission.", web.FormValues{})
		return
	}
	values := formValues(r)

	prefs, err := toPreferences(values)
	if err != nil {
		log.Info("invalid number in form", sl.Err(err))
		h.fail(w, log, id.Name, err.Error(), values)
		return
	}
	if err := h.validate.Struct(prefs); err != nil {
		log.Info("validation failed", sl.Err(err))
		msg := "Invalid preferences."
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msg = response.ValidationMessage(verrs)
		}
		h.fail(w, log, id.Name, msg, values)
		return
	}

	if err := h.service.Generate(r.Context(), id.UserUID, prefs); err != nil {
		log.Error("schedule generation failed", sl.Err(err))
		http.Error(w, FailureMessage, http.StatusInternalServerError)
		return
	}

	log.Info("schedule generated")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, userName, msg string, values web.FormValues) {
	err := h.renderer.Render(w, web.PageForm, http.StatusBadRequest, web.FormPage{
		Page:   web.Page{UserName: userName, Error: msg},
		Values: values,
	})
	if err != nil {
		log.Error("failed to render page", sl.Err(err))
		http.Error(w, msg, http.StatusBadRequest)
	}
}

func formValues(r *http.Request) web.FormValues {
	get := func(key string) string { return strings.TrimSpace(r.PostForm.Get(key)) }
	return web.FormValues{
		Goal:        get("goal"),
		Subjects:    get("subjects"),
		Methods:     get("methods"),
		Deadline:    get("deadline"),
		DailyTime:   get("dailytime"),
		Slots:       get("slots"),
		Flexibility: get("flexibility"),
		Remarks:     get("remarks"),
	}
}

var (
	errDeadline  = errors.New("field deadline must be a whole number of days")
	errDailyTime = errors.New("field dailytime must be a number of hours")
)

func toPreferences(v web.FormValues) (models.Preferences, error) {
	p := models.Preferences{
		Goal:        v.Goal,
		Subjects:    v.Subjects,
		Methods:     v.Methods,
		Slots:       v.Slots,
		Flexibility: v.Flexibility,
		Remarks:     v.Remarks,
	}
	if v.Deadline != "" {
		d, err := strconv.Atoi(v.Deadline)
		if err != nil {
			return p, errDeadline
		}
		p.Deadline = d
	}
	if v.DailyTime != "" {
		t, err := strconv.ParseFloat(v.DailyTime, 64)
		if err != nil {
			return p, errDailyTime
		}
		p.DailyTime = t
	}
	return p, nil
}
