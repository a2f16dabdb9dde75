package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewUser ожидает уже посчитанный хеш пароля.
func NewUser(username, passwordHash string, now time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, ErrEmptyPasswordHash
	}

	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}
