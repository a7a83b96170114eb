package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kamalesh73/smart--study-scheduler/internal/migrations"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

// TestDataFactory создает тестовые данные напрямую через SQL.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает пользователя и возвращает его uid.
func (f *TestDataFactory) CreateUser(t *testing.T, name, email string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, 'hashedpassword') RETURNING uid`, name, email).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateStreak создает запись серии занятий.
func (f *TestDataFactory) CreateStreak(t *testing.T, userUID string, current, longest int) {
	_, err := f.storage.DB.Exec(`INSERT INTO streaks (user_uid, current_streak, longest_streak)
		VALUES ($1, $2, $3)`, userUID, current, longest)
	require.NoError(t, err)
}

// CountSchedule возвращает число строк расписания пользователя.
func (f *TestDataFactory) CountSchedule(t *testing.T, userUID string) int {
	var n int
	err := f.storage.DB.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM schedule_items WHERE user_uid = $1`, userUID).Scan(&n)
	require.NoError(t, err)
	return n
}

// FocusHours возвращает daily_focus_hours пользователя.
func (f *TestDataFactory) FocusHours(t *testing.T, userUID string) *float64 {
	u, err := f.storage.GetUser(context.Background(), userUID)
	require.NoError(t, err)
	return u.DailyFocusHours
}

func entry(day, start, end, subject string) models.ScheduleEntry {
	return models.ScheduleEntry{DayOfWeek: day, StartTime: start, EndTime: end, Subject: subject}
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(connStr)
	require.NoError(t, err, "failed to create storage")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))
	require.NoError(t, CheckDatabaseReady(ctx, storage))

	cleanup := func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}
