// Package generator превращает учебные предпочтения пользователя в недельное
// расписание с помощью внешней генеративной модели.
//
// Генерация не имеет побочных эффектов: результат либо корректный список
// элементов расписания, либо ошибка models.ErrGenerationService (модель
// недоступна, таймаут, квота) или models.ErrGenerationParse (ответ не
// соответствует схеме).
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

// DefaultTimeout ограничивает время одного обращения к модели.
const DefaultTimeout = 60 * time.Second

// Model описывает генеративную модель: один запрос, один текстовый ответ.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Generator строит запрос, вызывает модель и разбирает ответ.
type Generator struct {
	log     *slog.Logger
	model   Model
	timeout time.Duration
}

// New создаёт Generator. Нулевой timeout заменяется на DefaultTimeout.
func New(log *slog.Logger, model Model, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{
		log:     log,
		model:   model,
		timeout: timeout,
	}
}

// Generate возвращает расписание для переданных предпочтений.
func (g *Generator) Generate(ctx context.Context, prefs models.Preferences) ([]models.ScheduleEntry, error) {
	const op = "generator.Generate"
	log := g.log.With(sl.Op(op))

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	raw, err := g.model.GenerateText(ctx, BuildPrompt(prefs))
	if err != nil {
		log.Error("model call failed", sl.Err(err), slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrGenerationService, err)
	}
	log.Debug("model responded", slog.Duration("elapsed", time.Since(start)), slog.Int("bytes", len(raw)))

	entries, err := ParseEntries(raw)
	if err != nil {
		log.Warn("model output rejected", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}
