package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

// BuildPrompt собирает из предпочтений пользователя одну инструкцию для модели.
// Модель должна вернуть только JSON-массив объектов ровно с четырьмя полями.
func BuildPrompt(p models.Preferences) string {
	var b strings.Builder

	b.WriteString("You are a study planner. Create a weekly study schedule for a student.\n\n")
	b.WriteString("Student preferences:\n")
	writeLine(&b, "Goal", p.Goal)
	writeLine(&b, "Subjects", p.Subjects)
	writeLine(&b, "Preferred study methods", p.Methods)
	writeLine(&b, "Deadline (days from today)", strconv.Itoa(p.Deadline))
	writeLine(&b, "Daily study time (hours)", strconv.FormatFloat(p.DailyTime, 'f', -1, 64))
	writeLine(&b, "Preferred time slots", p.Slots)
	writeLine(&b, "Flexibility", p.Flexibility)
	writeLine(&b, "Additional remarks", p.Remarks)

	b.WriteString("\nRespond with ONLY a JSON array and nothing else: no prose, no markdown.\n")
	b.WriteString("Each element must be an object with exactly these four string fields:\n")
	b.WriteString(`  "dayOfWeek": one of Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday` + "\n")
	b.WriteString(`  "startTime": 24-hour time in HH:MM format` + "\n")
	b.WriteString(`  "endTime": 24-hour time in HH:MM format, later than startTime on the same day` + "\n")
	b.WriteString(`  "subject": one of the student's subjects` + "\n")
	fmt.Fprintf(&b, "The total study time per day must not exceed %s hours.\n",
		strconv.FormatFloat(p.DailyTime, 'f', -1, 64))
	b.WriteString(`Example: [{"dayOfWeek":"Monday","startTime":"09:00","endTime":"11:00","subject":"Math"}]`)

	return b.String()
}

func writeLine(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = "not specified"
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}
