// Package web рендерит HTML-страницы приложения из встроенных шаблонов.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Имена страниц.
const (
	PageIndex     = "index"
	PageForm      = "form"
	PageDashboard = "dashboard"
)

// Page — общие поля всех страниц.
type Page struct {
	UserName string
	Error    string
	Message  string
}

// IndexPage — страница входа и регистрации.
type IndexPage struct {
	Page
	Name  string
	Email string
}

// FormValues — введённые в форму значения, как их прислал пользователь.
type FormValues struct {
	Goal        string
	Subjects    string
	Methods     string
	Deadline    string
	DailyTime   string
	Slots       string
	Flexibility string
	Remarks     string
}

// FormPage — страница формы предпочтений.
type FormPage struct {
	Page
	Values FormValues
}

// DayGroup — элементы расписания одного дня.
type DayGroup struct {
	Day     string
	Entries []models.ScheduleEntry
}

// DashboardPage — страница дашборда.
type DashboardPage struct {
	Page
	Dashboard *models.Dashboard
	Days      []DayGroup
}

// GroupByDay раскладывает упорядоченное расписание по дням, пропуская пустые.
func GroupByDay(entries []models.ScheduleEntry) []DayGroup {
	var groups []DayGroup
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1].Day == e.DayOfWeek {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, DayGroup{Day: e.DayOfWeek, Entries: []models.ScheduleEntry{e}})
	}
	return groups
}

// Renderer хранит разобранные шаблоны страниц.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer разбирает встроенные шаблоны.
func NewRenderer() (*Renderer, error) {
	const op = "web.NewRenderer"

	pages := make(map[string]*template.Template)
	for _, name := range []string{PageIndex, PageForm, PageDashboard} {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render пишет страницу name с кодом status. Шаблон исполняется в буфер,
// поэтому при ошибке клиент не получает обрезанную страницу.
func (r *Renderer) Render(w http.ResponseWriter, name string, status int, data any) error {
	const op = "web.Render"

	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("%s: unknown page %q", op, name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
