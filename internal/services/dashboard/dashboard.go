// Package dashboard собирает модель чтения дашборда пользователя.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kamalesh73/smart--study-scheduler/internal/cache"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

// Repository — чтение профиля, расписания и серии занятий.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ListSchedule(ctx context.Context, userUID string) ([]models.ScheduleEntry, error)
	GetStreak(ctx context.Context, userUID string) (models.Streak, error)
}

// Cache — кэш готовой модели дашборда с версиями ключей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Version(ctx context.Context, key string) (int64, error)
	SetIfVersion(ctx context.Context, key string, value any, expiration time.Duration, version int64) (bool, error)
}

// Service собирает дашборд из хранилища, кэшируя результат.
type Service struct {
	log   *slog.Logger
	repo  Repository
	cache Cache
	ttl   time.Duration
}

// New создаёт Service.
func New(log *slog.Logger, repo Repository, cache Cache, ttl time.Duration) *Service {
	return &Service{
		log:   log,
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// Assemble возвращает дашборд пользователя. Для несуществующего
// пользователя возвращается models.ErrNotFound. Ошибки кэша только логируются.
func (s *Service) Assemble(ctx context.Context, userUID string) (*models.Dashboard, error) {
	const op = "dashboard.Assemble"
	log := s.log.With(sl.Op(op), slog.String("user_uid", userUID))
	key := cache.DashboardKey(userUID)

	var cached models.Dashboard
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("failed to read dashboard cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	// Версию читаем до обращения к базе: если расписание заменят во время
	// чтения, устаревший снимок не попадёт в кэш.
	version, verr := s.cache.Version(ctx, key)
	if verr != nil {
		log.Warn("failed to read dashboard cache version", sl.Err(verr))
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	entries, err := s.repo.ListSchedule(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	streak, err := s.repo.GetStreak(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := &models.Dashboard{
		User: models.DashboardUser{
			UUID:            user.UUID,
			Name:            user.Name,
			Email:           user.Email,
			DailyFocusHours: user.DailyFocusHours,
		},
		Schedule: entries,
		Streak:   streak,
	}

	if verr != nil {
		return d, nil
	}
	stored, err := s.cache.SetIfVersion(ctx, key, d, s.ttl, version)
	switch {
	case err != nil:
		log.Warn("failed to write dashboard cache", sl.Err(err))
	case !stored:
		log.Debug("dashboard changed while reading, cache not filled")
	}
	return d, nil
}
