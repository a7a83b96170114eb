package models

import "time"

// ScheduleGenerated — событие о сохранённом новом расписании пользователя.
type ScheduleGenerated struct {
	EventID     string          `json:"event_id"`
	UserUID     string          `json:"user_uid"`
	Entries     []ScheduleEntry `json:"entries"`
	DailyHours  float64         `json:"daily_hours"`
	GeneratedAt time.Time       `json:"generated_at"`
}
