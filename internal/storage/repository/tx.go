package repository

import (
	"context"
	"database/sql"
)

// withConnTx берёт из пула выделенное соединение, открывает на нём транзакцию
// и выполняет fn. При успехе транзакция коммитится, при ошибке или панике
// откатывается (панику пробрасываем дальше). Соединение возвращается в пул
// на любом пути выхода.
func (s *Storage) withConnTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(tx)
	return err
}
