package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

func TestStorage_CreateUser(t *testing.T) {
	query := regexp.QuoteMeta(`INSERT INTO users (name, email, password_hash)`)
	user := models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}

	t.Run("returns new uid", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectQuery(query).
			WithArgs("Alice", "alice@example.com", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"uid"}).AddRow(testUserUID))

		uid, err := storage.CreateUser(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, testUserUID, uid)
	})

	t.Run("unique violation maps to duplicate email", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectQuery(query).WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := storage.CreateUser(context.Background(), user)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	})

	t.Run("cancelled context", func(t *testing.T) {
		storage, _ := newMockStorage(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.CreateUser(ctx, user)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStorage_GetUserByEmail(t *testing.T) {
	query := regexp.QuoteMeta(`FROM users`)
	columns := []string{"uid", "name", "email", "password_hash", "daily_focus_hours", "created_at"}
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found with focus hours", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(testUserUID, "Alice", "alice@example.com", "hash", 2.0, created))

		u, err := storage.GetUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, testUserUID, u.UUID)
		require.NotNil(t, u.DailyFocusHours)
		assert.InDelta(t, 2.0, *u.DailyFocusHours, 1e-9)
		assert.Equal(t, created, u.CreatedAt)
	})

	t.Run("found without focus hours", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(testUserUID, "Alice", "alice@example.com", "hash", nil, created))

		u, err := storage.GetUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Nil(t, u.DailyFocusHours)
	})

	t.Run("not found", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs("nobody@example.com").WillReturnRows(sqlmock.NewRows(columns))

		_, err := storage.GetUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
