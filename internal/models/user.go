// Package models содержит доменные структуры приложения: пользователя,
// элементы расписания, серию занятий (streak) и модели для чтения дашборда.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID            string    // Уникальный идентификатор пользователя
	Name            string    // Отображаемое имя
	Email           string    // Электронная почта (уникальная)
	PasswordHash    string    // Хэш пароля пользователя
	DailyFocusHours *float64  // Сколько часов в день пользователь готов заниматься, nil до первой генерации
	CreatedAt       time.Time // Дата регистрации
}

// Identity — данные пользователя, извлечённые из сессионного токена.
type Identity struct {
	UserUID string
	Name    string
}
