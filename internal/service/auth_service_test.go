package service

import (
	"context"
	"testing"
	"time"

	"github.com/sheory/smart-room/internal/domain"
	"github.com/sheory/smart-room/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testSigner() *security.TokenSigner {
	return security.NewTokenSigner("test-secret", "smart-room", time.Hour, 0)
}

// MinCost, чтобы тесты не жгли CPU на bcrypt.
func testPassPolicy() security.BcryptConfig {
	return security.BcryptConfig{Cost: bcrypt.MinCost, MinLength: 6}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := new(MockUserRepo)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)
	svc := NewAuthService(users, testSigner(), testPassPolicy(), nil)

	_, err := svc.Register(context.Background(), "alice", "password1")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	users.AssertNotCalled(t, "Create")
}

func TestRegister_ShortPassword(t *testing.T) {
	users := new(MockUserRepo)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	svc := NewAuthService(users, testSigner(), testPassPolicy(), nil)

	_, err := svc.Register(context.Background(), "alice", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	users.AssertNotCalled(t, "Create")
}

func TestRegister_IssuesParsableToken(t *testing.T) {
	users := new(MockUserRepo)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)
	signer := testSigner()
	svc := NewAuthService(users, signer, testPassPolicy(), nil)

	token, err := svc.Register(context.Background(), " alice ", "password1")
	require.NoError(t, err)

	username, err := signer.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)
	svc := NewAuthService(users, testSigner(), testPassPolicy(), nil)

	_, err := svc.Login(context.Background(), "ghost", "password1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := security.HashPassword("password1", &security.BcryptConfig{Cost: bcrypt.MinCost})
	require.NoError(t, err)

	users := new(MockUserRepo)
	users.On("GetByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: 1, Username: "alice", PasswordHash: hash}, nil)
	svc := NewAuthService(users, testSigner(), testPassPolicy(), nil)

	_, err = svc.Login(context.Background(), "alice", "password2")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	hash, err := security.HashPassword("password1", &security.BcryptConfig{Cost: bcrypt.MinCost})
	require.NoError(t, err)

	users := new(MockUserRepo)
	users.On("GetByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: 1, Username: "alice", PasswordHash: hash}, nil)
	signer := testSigner()
	svc := NewAuthService(users, signer, testPassPolicy(), nil)

	token, err := svc.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)

	username, err := signer.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestCurrentUser(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: 1, Username: "alice"}, nil)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)
	signer := testSigner()
	svc := NewAuthService(users, signer, testPassPolicy(), nil)

	token, err := signer.SignAccessToken("alice", time.Now())
	require.NoError(t, err)

	username, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	// токен валиден, но пользователя уже нет
	orphan, err := signer.SignAccessToken("ghost", time.Now())
	require.NoError(t, err)
	_, err = svc.CurrentUser(context.Background(), orphan)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.CurrentUser(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
