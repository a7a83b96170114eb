// Package services содержит логику бизнес-уровня для регистрации, входа
// и проверки сессий пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kamalesh73/smart--study-scheduler/internal/lib/jwt"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/password"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService выдаёт и проверяет сессионные токены.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт пользователя и сразу возвращает сессионный токен.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (string, error) {
	const op = "services.Register"

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || rawPassword == "" {
		return "", fmt.Errorf("%s: %w: name, email and password are required", op, models.ErrValidation)
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", fmt.Errorf("%s: %w", op, models.ErrDuplicateEmail)
	case !errors.Is(err, models.ErrNotFound):
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if errors.Is(err, password.ErrTooLong) {
		return "", fmt.Errorf("%s: %w: %w", op, models.ErrValidation, err)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	uid, err := s.users.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(uid, name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Login проверяет пароль и возвращает сессионный токен.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.Login"

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.UUID, user.Name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// VerifySession проверяет токен и возвращает личность пользователя.
// Отсутствующий, подделанный или истёкший токен — models.ErrSession.
func (s *AuthService) VerifySession(token string) (*models.Identity, error) {
	const op = "services.VerifySession"

	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, models.ErrSession)
	}
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrSession, err)
	}
	return &models.Identity{
		UserUID: claims.UserUID,
		Name:    claims.Name,
	}, nil
}
