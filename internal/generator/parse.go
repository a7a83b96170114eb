package generator

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

const timeLayout = "15:04"

var entryFields = []string{"dayOfWeek", "startTime", "endTime", "subject"}

var validate = validator.New()

// ParseEntries разбирает ответ модели в список элементов расписания.
//
// Обрамляющие markdown-ограждения (```json ... ```) удаляются. Ответ должен
// быть непустым JSON-массивом объектов ровно с четырьмя строковыми полями.
// День недели нормализуется к виду Monday…Sunday, время к HH:MM.
// Любое нарушение возвращается как models.ErrGenerationParse.
func ParseEntries(raw string) ([]models.ScheduleEntry, error) {
	const op = "generator.ParseEntries"

	var decoded any
	if err := json.Unmarshal([]byte(stripFences(raw)), &decoded); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrGenerationParse, err)
	}

	items, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: top-level value is not an array", op, models.ErrGenerationParse)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w: empty schedule", op, models.ErrGenerationParse)
	}

	entries := make([]models.ScheduleEntry, 0, len(items))
	for i, item := range items {
		e, err := parseEntry(item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: element %d: %v", op, models.ErrGenerationParse, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// язык блока: ```json, ```JSON
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "[{") {
		s = s[nl+1:]
	} else if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func parseEntry(item any) (models.ScheduleEntry, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return models.ScheduleEntry{}, fmt.Errorf("not an object")
	}
	if len(obj) != len(entryFields) {
		return models.ScheduleEntry{}, fmt.Errorf("expected %d fields, got %d", len(entryFields), len(obj))
	}

	values := make(map[string]string, len(entryFields))
	for _, f := range entryFields {
		v, ok := obj[f]
		if !ok {
			return models.ScheduleEntry{}, fmt.Errorf("missing field %q", f)
		}
		s, ok := v.(string)
		if !ok {
			return models.ScheduleEntry{}, fmt.Errorf("field %q is not a string", f)
		}
		values[f] = strings.TrimSpace(s)
	}

	day, ok := normalizeDay(values["dayOfWeek"])
	if !ok {
		return models.ScheduleEntry{}, fmt.Errorf("unknown day %q", values["dayOfWeek"])
	}
	start, err := time.Parse(timeLayout, values["startTime"])
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("bad startTime %q", values["startTime"])
	}
	end, err := time.Parse(timeLayout, values["endTime"])
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("bad endTime %q", values["endTime"])
	}
	if !end.After(start) {
		return models.ScheduleEntry{}, fmt.Errorf("endTime %s is not after startTime %s",
			values["endTime"], values["startTime"])
	}

	e := models.ScheduleEntry{
		DayOfWeek: day,
		StartTime: start.Format(timeLayout),
		EndTime:   end.Format(timeLayout),
		Subject:   values["subject"],
	}
	if err := validate.Struct(e); err != nil {
		return models.ScheduleEntry{}, err
	}
	return e, nil
}

func normalizeDay(day string) (string, bool) {
	for _, d := range models.Weekdays {
		if strings.EqualFold(d, day) {
			return d, true
		}
	}
	return "", false
}
