package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/sheory/smart-room/internal/domain"
	"github.com/sheory/smart-room/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Book — защищён от гонок по capacity и пересечениям.
// Проверки существования комнаты, вместимости и пересечения выполняются
// в одной транзакции под блокировкой строки комнаты: две параллельные
// брони одной комнаты сериализуются и не пробьют лимит.
func (r *ReservationRepository) Book(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Блокируем строку комнаты. Параллельные транзакции по той же комнате будут ждать.
	room, err := getRoom(ctx, tx, queries.QueryLockRoom, res.RoomID)
	if err != nil {
		return err
	}
	if room.Capacity <= 0 {
		return domain.ErrRoomCapacityFull
	}

	existing, err := findOverlapping(ctx, tx, res.RoomID, res.StartTime, res.EndTime)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrRoomAlreadyReserved
	}

	// Декремент с условием capacity > 0, ниже нуля не уходит.
	cmd, err := tx.Exec(ctx, queries.QueryDecrementRoomCapacity, res.RoomID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRoomCapacityFull
	}

	if err := tx.QueryRow(ctx, queries.QueryCreateReservation,
		res.RoomID, res.UserName, res.StartTime, res.EndTime).Scan(&res.ID); err != nil {
		return mapPgError(err)
	}

	return tx.Commit(ctx)
}

// Cancel возвращает отменённую бронь; владение проверяется под блокировкой,
// возврат capacity и удаление записи коммитятся атомарно.
func (r *ReservationRepository) Cancel(ctx context.Context, id int64, userName string) (*domain.Reservation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	res, err := getReservation(ctx, tx, queries.QueryLockReservation, id)
	if err != nil {
		return nil, err
	}
	if res.UserName != userName {
		return nil, domain.ErrNotAuthorized
	}

	if _, err := tx.Exec(ctx, queries.QueryIncrementRoomCapacity, res.RoomID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, queries.QueryDeleteReservation, res.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *ReservationRepository) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return getReservation(ctx, r.db, queries.QueryGetReservation, id)
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, roomID int64, start, end time.Time) (*domain.Reservation, error) {
	return findOverlapping(ctx, r.db, roomID, start, end)
}

func (r *ReservationRepository) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, queries.QueryListReservationsByRoom, roomID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.RoomID, &res.UserName, &res.StartTime, &res.EndTime); err != nil {
			return nil, err
		}
		list = append(list, res)
	}

	return list, rows.Err()
}

func getReservation(ctx context.Context, q querier, sql string, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	err := q.QueryRow(ctx, sql, id).
		Scan(&res.ID, &res.RoomID, &res.UserName, &res.StartTime, &res.EndTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	return &res, nil
}

// findOverlapping возвращает nil, nil если пересечений нет.
func findOverlapping(ctx context.Context, q querier, roomID int64, start, end time.Time) (*domain.Reservation, error) {
	var res domain.Reservation
	err := q.QueryRow(ctx, queries.QueryFindOverlapping, roomID, start, end).
		Scan(&res.ID, &res.RoomID, &res.UserName, &res.StartTime, &res.EndTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &res, nil
}
