package models

// Weekdays — фиксированный порядок дней недели, начиная с понедельника.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// ScheduleEntry — один учебный блок расписания.
// Время хранится строкой в формате HH:MM.
type ScheduleEntry struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
	Subject   string `json:"subject" validate:"required,max=200"`
}

// DayIndex возвращает позицию дня в неделе (0 — понедельник) или -1.
func DayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}
