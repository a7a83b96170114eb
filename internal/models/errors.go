package models

import "errors"

var (
	// ErrValidation — не заполнено обязательное поле или значение вне допустимого диапазона.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateEmail — пользователь с таким email уже зарегистрирован.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials — пароль не совпал с хэшем.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrGenerationParse — ответ модели не является корректным массивом расписания.
	ErrGenerationParse = errors.New("failed to parse generated schedule")
	// ErrGenerationService — ошибка сети, таймаут или квота внешней модели.
	ErrGenerationService = errors.New("generation service error")
	// ErrPersistence — транзакция сохранения расписания откатилась.
	ErrPersistence = errors.New("failed to persist schedule")
	// ErrSession — токен отсутствует, подделан или истёк.
	ErrSession = errors.New("invalid or expired session")
)
