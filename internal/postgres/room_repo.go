package postgres

import (
	"context"
	"errors"

	"github.com/sheory/smart-room/internal/domain"
	"github.com/sheory/smart-room/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	err := r.db.QueryRow(ctx, queries.QueryCreateRoom,
		room.Name, room.Location, room.Capacity).Scan(&room.ID)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *RoomRepository) Get(ctx context.Context, id int64) (*domain.Room, error) {
	return getRoom(ctx, r.db, queries.QueryGetRoom, id)
}

func (r *RoomRepository) List(ctx context.Context, limit, offset int) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, queries.QueryListRooms, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Location, &rm.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}

	return rooms, rows.Err()
}

// Delete — брони комнаты удаляются каскадом (FK ON DELETE CASCADE).
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, queries.QueryDeleteRoom, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}

	return nil
}

func getRoom(ctx context.Context, q querier, sql string, id int64) (*domain.Room, error) {
	var rm domain.Room
	err := q.QueryRow(ctx, sql, id).
		Scan(&rm.ID, &rm.Name, &rm.Location, &rm.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}

	return &rm, nil
}
