package postgres

import (
	"context"
	"errors"

	"github.com/sheory/smart-room/internal/domain"
	"github.com/sheory/smart-room/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, queries.QueryCreateUser,
		u.Username, u.PasswordHash, u.CreatedAt).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}

	return id, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, queries.QueryGetUserByUsername, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, mapPgError(err)
	}

	return &u, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, queries.QueryExistsUserByUsername, username).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapPgError(err)
	}

	return true, nil
}
