package postgres

import (
	"context"
	"errors"

	"github.com/sheory/smart-room/internal/domain"

	"github.com/jackc/pgx/v5"
	pgconn "github.com/jackc/pgx/v5/pgconn"
)

/*
абстрактный слой над *pgxpool.Pool / pgx.Tx —
один и тот же репозиторий работает и из пула, и внутри транзакции
*/
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		// 23505 - unique violation (users.username)
		case "23505":
			return domain.ErrUserAlreadyExists
		// 23503 - foreign key violation (reservation.room_id)
		case "23503":
			return domain.ErrRoomNotFound
		}
	}

	return err
}
