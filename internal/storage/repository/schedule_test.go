package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

const testUserUID = "550e8400-e29b-41d4-a716-446655440000"

var (
	lockQuery   = regexp.QuoteMeta(`SELECT uid FROM users WHERE uid = $1 FOR UPDATE`)
	deleteQuery = regexp.QuoteMeta(`DELETE FROM schedule_items WHERE user_uid = $1`)
	insertQuery = regexp.QuoteMeta(`INSERT INTO schedule_items`)
	updateQuery = regexp.QuoteMeta(`UPDATE users SET daily_focus_hours = $1 WHERE uid = $2`)
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Storage{DB: db}, mock
}

func testEntries() []models.ScheduleEntry {
	return []models.ScheduleEntry{
		{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "11:00", Subject: "Math"},
		{DayOfWeek: "Tuesday", StartTime: "18:00", EndTime: "19:30", Subject: "Physics"},
		{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "11:00", Subject: "Math"},
	}
}

func expectLock(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(lockQuery).
		WithArgs(testUserUID).
		WillReturnRows(sqlmock.NewRows([]string{"uid"}).AddRow(testUserUID))
}

func TestStorage_ReplaceSchedule(t *testing.T) {
	dbErr := errors.New("connection reset")
	entries := testEntries()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success replaces all rows and commits",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock)
				mock.ExpectExec(deleteQuery).WithArgs(testUserUID).WillReturnResult(sqlmock.NewResult(0, 5))
				for i, e := range entries {
					mock.ExpectExec(insertQuery).
						WithArgs(testUserUID, i, e.DayOfWeek, e.StartTime, e.EndTime, e.Subject).
						WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
				}
				mock.ExpectExec(updateQuery).WithArgs(2.5, testUserUID).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "begin failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dbErr)
			},
			wantErr: dbErr,
		},
		{
			name: "missing user rolls back",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(testUserUID).WillReturnRows(sqlmock.NewRows([]string{"uid"}))
				mock.ExpectRollback()
			},
			wantErr: models.ErrNotFound,
		},
		{
			name: "delete failure rolls back",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock)
				mock.ExpectExec(deleteQuery).WithArgs(testUserUID).WillReturnError(dbErr)
				mock.ExpectRollback()
			},
			wantErr: dbErr,
		},
		{
			name: "single insert failure rolls back without commit",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock)
				mock.ExpectExec(deleteQuery).WithArgs(testUserUID).WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(insertQuery).WillReturnError(dbErr)
				mock.ExpectRollback()
			},
			wantErr: dbErr,
		},
		{
			name: "update failure rolls back",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock)
				mock.ExpectExec(deleteQuery).WithArgs(testUserUID).WillReturnResult(sqlmock.NewResult(0, 0))
				for range entries {
					mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
				}
				mock.ExpectExec(updateQuery).WillReturnError(dbErr)
				mock.ExpectRollback()
			},
			wantErr: dbErr,
		},
		{
			name: "commit failure is reported",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock)
				mock.ExpectExec(deleteQuery).WithArgs(testUserUID).WillReturnResult(sqlmock.NewResult(0, 0))
				for range entries {
					mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
				}
				mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, mock := newMockStorage(t)
			tt.setup(mock)

			err := storage.ReplaceSchedule(context.Background(), testUserUID, entries, 2.5)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrPersistence)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStorage_ReplaceSchedule_EmptyEntries(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	expectLock(mock)
	mock.ExpectExec(deleteQuery).WithArgs(testUserUID).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(updateQuery).WithArgs(1.0, testUserUID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := storage.ReplaceSchedule(context.Background(), testUserUID, nil, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ListSchedule(t *testing.T) {
	storage, mock := newMockStorage(t)

	rows := sqlmock.NewRows([]string{"day_of_week", "start_time", "end_time", "subject"}).
		AddRow("Monday", "09:00", "11:00", "Math").
		AddRow("Sunday", "10:00", "12:00", "Physics")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM schedule_items`)).WithArgs(testUserUID).WillReturnRows(rows)

	got, err := storage.ListSchedule(context.Background(), testUserUID)
	require.NoError(t, err)
	assert.Equal(t, []models.ScheduleEntry{
		{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "11:00", Subject: "Math"},
		{DayOfWeek: "Sunday", StartTime: "10:00", EndTime: "12:00", Subject: "Physics"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ListSchedule_Empty(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM schedule_items`)).
		WithArgs(testUserUID).
		WillReturnRows(sqlmock.NewRows([]string{"day_of_week", "start_time", "end_time", "subject"}))

	got, err := storage.ListSchedule(context.Background(), testUserUID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStorage_GetStreak(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT current_streak, longest_streak FROM streaks WHERE user_uid = $1`)

	t.Run("existing record", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs(testUserUID).
			WillReturnRows(sqlmock.NewRows([]string{"current_streak", "longest_streak"}).AddRow(3, 10))

		got, err := storage.GetStreak(context.Background(), testUserUID)
		require.NoError(t, err)
		assert.Equal(t, models.Streak{Current: 3, Longest: 10}, got)
	})

	t.Run("missing record defaults to zero", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs(testUserUID).
			WillReturnRows(sqlmock.NewRows([]string{"current_streak", "longest_streak"}))

		got, err := storage.GetStreak(context.Background(), testUserUID)
		require.NoError(t, err)
		assert.Equal(t, models.Streak{}, got)
	})
}
