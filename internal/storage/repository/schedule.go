package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

// ReplaceSchedule атомарно заменяет расписание пользователя на entries
// и обновляет его daily_focus_hours.
//
// Строка пользователя блокируется (FOR UPDATE), поэтому две параллельные
// замены для одного пользователя выполняются строго друг за другом.
// Любая ошибка откатывает транзакцию целиком: старое расписание остаётся
// нетронутым. Ошибка оборачивается в models.ErrPersistence.
func (s *Storage) ReplaceSchedule(ctx context.Context, userUID string, entries []models.ScheduleEntry, dailyHours float64) error {
	const op = "storage.ReplaceSchedule"

	err := s.withConnTx(ctx, func(tx *sql.Tx) error {
		var locked string
		err := tx.QueryRowContext(ctx,
			`SELECT uid FROM users WHERE uid = $1 FOR UPDATE`, userUID).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM schedule_items WHERE user_uid = $1`, userUID); err != nil {
			return fmt.Errorf("delete old schedule: %w", err)
		}

		query := `INSERT INTO schedule_items (user_uid, position, day_of_week, start_time, end_time, subject)
				  VALUES ($1, $2, $3, $4, $5, $6)`
		for i, e := range entries {
			if _, err := tx.ExecContext(ctx, query,
				userUID, i, e.DayOfWeek, e.StartTime, e.EndTime, e.Subject); err != nil {
				return fmt.Errorf("insert entry %d: %w", i, err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET daily_focus_hours = $1 WHERE uid = $2`, dailyHours, userUID); err != nil {
			return fmt.Errorf("update daily focus hours: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, models.ErrPersistence, err)
	}
	return nil
}

// ListSchedule возвращает расписание пользователя: дни с понедельника
// по воскресенье, внутри дня — по времени начала.
func (s *Storage) ListSchedule(ctx context.Context, userUID string) ([]models.ScheduleEntry, error) {
	const op = "storage.ListSchedule"

	query := `SELECT day_of_week, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), subject
			  FROM schedule_items
			  WHERE user_uid = $1
			  ORDER BY CASE day_of_week
			               WHEN 'Monday' THEN 1
			               WHEN 'Tuesday' THEN 2
			               WHEN 'Wednesday' THEN 3
			               WHEN 'Thursday' THEN 4
			               WHEN 'Friday' THEN 5
			               WHEN 'Saturday' THEN 6
			               WHEN 'Sunday' THEN 7
			           END,
			           start_time,
			           position`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.ScheduleEntry, 0)
	for rows.Next() {
		var e models.ScheduleEntry
		if err := rows.Scan(&e.DayOfWeek, &e.StartTime, &e.EndTime, &e.Subject); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
