package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sheory/smart-room/internal/domain"
)

type ReservationRepo interface {
	Book(ctx context.Context, res *domain.Reservation) error
	Cancel(ctx context.Context, id int64, userName string) (*domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	FindOverlapping(ctx context.Context, roomID int64, start, end time.Time) (*domain.Reservation, error)
	ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Reservation, error)
}

// Events — получатель событий жизненного цикла брони (ws-рассылка).
type Events interface {
	ReservationCreated(res *domain.Reservation)
	ReservationCancelled(res *domain.Reservation)
}

type ReservationService struct {
	rooms        RoomRepo
	reservations ReservationRepo
	events       Events
	now          func() time.Time
}

func NewReservationService(rooms RoomRepo, reservations ReservationRepo, events Events, now func() time.Time) *ReservationService {
	if now == nil {
		now = time.Now
	}

	return &ReservationService{
		rooms:        rooms,
		reservations: reservations,
		events:       events,
		now:          now,
	}
}

// Validate прогоняет проверки брони без записи. Порядок фиксирован, первая
// сработавшая проверка определяет причину отказа:
// диапазон, прошлое, существование комнаты, вместимость, пересечение.
func (s *ReservationService) Validate(ctx context.Context, roomID int64, start, end time.Time) error {
	if err := s.validateWindow(start, end); err != nil {
		return err
	}

	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if room.Capacity <= 0 {
		return domain.ErrRoomCapacityFull
	}

	existing, err := s.reservations.FindOverlapping(ctx, roomID, start, end)
	if err != nil {
		return fmt.Errorf("reservations.FindOverlapping: %w", err)
	}
	if existing != nil {
		return domain.ErrRoomAlreadyReserved
	}

	return nil
}

// Book бронирует комнату. Окно проверяется здесь; проверки комнаты,
// вместимости и пересечения повторяются внутри транзакции репозитория,
// чтобы результат валидации не обесценила параллельная бронь.
func (s *ReservationService) Book(ctx context.Context, roomID int64, userName string, start, end time.Time) (*domain.Reservation, error) {
	if err := s.validateWindow(start, end); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		RoomID:    roomID,
		UserName:  userName,
		StartTime: start,
		EndTime:   end,
	}

	if err := s.reservations.Book(ctx, res); err != nil {
		return nil, err
	}

	slog.Info("room reserved",
		"room_id", roomID, "reservation_id", res.ID, "user", userName)

	if s.events != nil {
		s.events.ReservationCreated(res)
	}

	return res, nil
}

// Cancel снимает бронь владельца. Отмена несуществующей брони — не ошибка:
// возвращается cancelled=false без err (информационный исход).
func (s *ReservationService) Cancel(ctx context.Context, id int64, userName string) (bool, error) {
	res, err := s.reservations.Cancel(ctx, id, userName)
	switch {
	case errors.Is(err, domain.ErrReservationNotFound):
		return false, nil
	case err != nil:
		return false, err
	}

	slog.Info("reservation cancelled",
		"reservation_id", id, "room_id", res.RoomID, "user", userName)

	if s.events != nil {
		s.events.ReservationCancelled(res)
	}

	return true, nil
}

// CheckAvailability — тот же предикат пересечения, без записи.
func (s *ReservationService) CheckAvailability(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, domain.ErrInvalidTimeRange
	}

	if _, err := s.rooms.Get(ctx, roomID); err != nil {
		return false, err
	}

	existing, err := s.reservations.FindOverlapping(ctx, roomID, start, end)
	if err != nil {
		return false, fmt.Errorf("reservations.FindOverlapping: %w", err)
	}

	return existing == nil, nil
}

// ListRoomReservations возвращает брони комнаты постранично.
func (s *ReservationService) ListRoomReservations(ctx context.Context, roomID int64, limit, offset int) ([]domain.Reservation, error) {
	limit, offset = clampPage(limit, offset)

	if _, err := s.rooms.Get(ctx, roomID); err != nil {
		return nil, err
	}

	return s.reservations.ListByRoom(ctx, roomID, limit, offset)
}

func (s *ReservationService) validateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return domain.ErrInvalidTimeRange
	}
	if start.Before(s.now()) {
		return domain.ErrInvalidStartTime
	}

	return nil
}
