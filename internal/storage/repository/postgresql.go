// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, их учебных расписаний и серий занятий.
// Предоставляет методы регистрации и поиска пользователей, атомарной
// замены расписания и чтения данных для дашборда.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует пул соединений с базой данных PostgreSQL.
// Пул создаётся один раз в main и передаётся во все компоненты явно.
type Storage struct {
	DB *sql.DB
}

// New создаёт пул соединений с PostgreSQL и проверяет доступность базы.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Ping проверяет соединение с базой.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CheckDatabaseReady проверяет, что миграции применены.
func CheckDatabaseReady(ctx context.Context, storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables 
        WHERE table_name = 'schedule_items'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("required table schedule_items query error: %w", err)
	}
	if !exists {
		return fmt.Errorf("required table schedule_items missing")
	}
	return nil
}
