// Package schedule связывает генерацию расписания с его сохранением.
//
// Generate выполняет две стадии строго последовательно: сначала чистая
// генерация без побочных эффектов, затем транзакционная замена расписания.
// После коммита сбрасывается кэш дашборда и публикуется событие.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kamalesh73/smart--study-scheduler/internal/cache"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/metrics"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
	"github.com/kamalesh73/smart--study-scheduler/internal/rabbitmq"
)

// Generator строит расписание по предпочтениям.
type Generator interface {
	Generate(ctx context.Context, prefs models.Preferences) ([]models.ScheduleEntry, error)
}

// Repository атомарно заменяет расписание пользователя.
type Repository interface {
	ReplaceSchedule(ctx context.Context, userUID string, entries []models.ScheduleEntry, dailyHours float64) error
}

// Cache сбрасывает закэшированный дашборд.
type Cache interface {
	Invalidate(ctx context.Context, key string) error
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Metrics учитывает попытки генерации.
type Metrics interface {
	ObserveGeneration(result string, elapsed time.Duration)
}

// Service — сервис генерации расписаний.
type Service struct {
	log       *slog.Logger
	generator Generator
	repo      Repository
	cache     Cache
	publisher Publisher
	metrics   Metrics
	now       func() time.Time
}

// New создаёт Service.
func New(log *slog.Logger, generator Generator, repo Repository, cache Cache, publisher Publisher, m Metrics) *Service {
	return &Service{
		log:       log,
		generator: generator,
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// Generate генерирует и сохраняет новое расписание пользователя.
//
// Отмена ctx клиентом не прерывает операцию: запрос к модели и транзакция
// доводятся до конца. Ошибки генерации (models.ErrGenerationParse,
// models.ErrGenerationService) и сохранения (models.ErrPersistence)
// возвращаются вызывающему; в этих случаях сохранённое расписание не меняется.
func (s *Service) Generate(ctx context.Context, userUID string, prefs models.Preferences) error {
	const op = "schedule.Generate"
	log := s.log.With(sl.Op(op), slog.String("user_uid", userUID))

	ctx = context.WithoutCancel(ctx)
	start := s.now()

	entries, err := s.generator.Generate(ctx, prefs)
	if err != nil {
		s.metrics.ObserveGeneration(metrics.ResultGenerationFailed, time.Since(start))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.ReplaceSchedule(ctx, userUID, entries, prefs.DailyTime); err != nil {
		s.metrics.ObserveGeneration(metrics.ResultPersistenceFailed, time.Since(start))
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("schedule replaced", slog.Int("entries", len(entries)))

	if err := s.cache.Invalidate(ctx, cache.DashboardKey(userUID)); err != nil {
		log.Warn("failed to invalidate dashboard cache", sl.Err(err))
	}

	event := models.ScheduleGenerated{
		EventID:     uuid.NewString(),
		UserUID:     userUID,
		Entries:     entries,
		DailyHours:  prefs.DailyTime,
		GeneratedAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeyGenerated, event); err != nil {
		log.Warn("failed to publish schedule event", sl.Err(err))
	}

	s.metrics.ObserveGeneration(metrics.ResultOK, time.Since(start))
	return nil
}
