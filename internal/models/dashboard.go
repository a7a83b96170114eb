package models

// DashboardUser — публичная часть профиля, показываемая на дашборде.
type DashboardUser struct {
	UUID            string   `json:"uid"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	DailyFocusHours *float64 `json:"daily_focus_hours,omitempty"`
}

// Dashboard — модель для чтения: профиль, упорядоченное расписание и серия.
type Dashboard struct {
	User     DashboardUser   `json:"user"`
	Schedule []ScheduleEntry `json:"schedule"`
	Streak   Streak          `json:"streak"`
}
