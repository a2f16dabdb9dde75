package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sheory/smart-room/internal/domain"
	"github.com/sheory/smart-room/internal/security"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type AuthService struct {
	users      UserRepo
	signer     *security.TokenSigner
	passPolicy security.BcryptConfig
	now        func() time.Time
}

func NewAuthService(users UserRepo, signer *security.TokenSigner, passPolicy security.BcryptConfig, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}

	return &AuthService{
		users:      users,
		signer:     signer,
		passPolicy: passPolicy,
		now:        now,
	}
}

// Register создаёт пользователя и сразу выпускает access-токен.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("users.ExistsByUsername: %w", err)
	}
	if exists {
		return "", domain.ErrUserAlreadyExists
	}

	hash, err := security.HashPassword(password, &s.passPolicy)
	if err != nil {
		return "", err
	}

	u, err := domain.NewUser(username, hash, s.now())
	if err != nil {
		return "", err
	}

	id, err := s.users.Create(ctx, u)
	if err != nil {
		return "", fmt.Errorf("users.Create: %w", err)
	}
	u.ID = id

	slog.Info("user registered", "username", u.Username)

	return s.signer.SignAccessToken(u.Username, s.now())
}

// Login аутентифицирует по username+пароль и выпускает токен.
// Отсутствие пользователя и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("users.GetByUsername: %w", err)
	}

	if err := security.ComparePassword(u.PasswordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	slog.Info("user logged in", "username", u.Username)

	return s.signer.SignAccessToken(u.Username, s.now())
}

// CurrentUser парсит access-токен и возвращает имя существующего пользователя.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (string, error) {
	username, err := s.signer.ParseAndValidate(token)
	if err != nil {
		return "", err
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("users.GetByUsername: %w", err)
	}

	return u.Username, nil
}

func (s *AuthService) AccessTTL() time.Duration { return s.signer.TTL() }
