package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

// GetStreak возвращает серию занятий пользователя.
// Если записи нет, возвращается нулевая серия.
func (s *Storage) GetStreak(ctx context.Context, userUID string) (models.Streak, error) {
	const op = "storage.GetStreak"

	var st models.Streak
	err := s.DB.QueryRowContext(ctx,
		`SELECT current_streak, longest_streak FROM streaks WHERE user_uid = $1`, userUID).
		Scan(&st.Current, &st.Longest)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Streak{}, nil
	}
	if err != nil {
		return models.Streak{}, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}
