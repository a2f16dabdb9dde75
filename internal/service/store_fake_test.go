package service

import (
	"context"
	"sync"
	"time"

	"github.com/sheory/smart-room/internal/domain"
)

// fakeStore — in-memory замена postgres-репозиториям с той же семантикой:
// уменьшение вместимости при брони, возврат при отмене, проверка пересечений
// и владельца. RoomRepo и ReservationRepo раздаются как представления
// поверх общего состояния.
type fakeStore struct {
	mu           sync.Mutex
	rooms        map[int64]*domain.Room
	reservations map[int64]*domain.Reservation
	nextRoomID   int64
	nextResID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:        make(map[int64]*domain.Room),
		reservations: make(map[int64]*domain.Reservation),
		nextRoomID:   1,
		nextResID:    1,
	}
}

func (s *fakeStore) roomRepo() RoomRepo               { return fakeRoomRepo{s} }
func (s *fakeStore) reservationRepo() ReservationRepo { return fakeReservationRepo{s} }

func (s *fakeStore) addRoom(name string, capacity int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextRoomID
	s.nextRoomID++
	s.rooms[id] = &domain.Room{ID: id, Name: name, Capacity: capacity}

	return id
}

func (s *fakeStore) roomCapacity(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rooms[id].Capacity
}

func (s *fakeStore) hasReservation(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.reservations[id]

	return ok
}

func (s *fakeStore) overlapping(roomID int64, start, end time.Time) *domain.Reservation {
	for id := int64(1); id < s.nextResID; id++ {
		res, ok := s.reservations[id]
		if ok && res.RoomID == roomID && res.Overlaps(start, end) {
			return res
		}
	}

	return nil
}

type fakeRoomRepo struct{ s *fakeStore }

func (r fakeRoomRepo) Create(_ context.Context, room *domain.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room.ID = r.s.nextRoomID
	r.s.nextRoomID++
	cp := *room
	r.s.rooms[room.ID] = &cp

	return nil
}

func (r fakeRoomRepo) Get(_ context.Context, id int64) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	cp := *room

	return &cp, nil
}

func (r fakeRoomRepo) List(_ context.Context, limit, offset int) ([]domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Room, 0, len(r.s.rooms))
	for id := int64(1); id < r.s.nextRoomID; id++ {
		if room, ok := r.s.rooms[id]; ok {
			out = append(out, *room)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r fakeRoomRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[id]; !ok {
		return domain.ErrRoomNotFound
	}
	delete(r.s.rooms, id)
	for resID, res := range r.s.reservations {
		if res.RoomID == id {
			delete(r.s.reservations, resID)
		}
	}

	return nil
}

type fakeReservationRepo struct{ s *fakeStore }

func (r fakeReservationRepo) Book(_ context.Context, res *domain.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[res.RoomID]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if room.Capacity <= 0 {
		return domain.ErrRoomCapacityFull
	}
	if r.s.overlapping(res.RoomID, res.StartTime, res.EndTime) != nil {
		return domain.ErrRoomAlreadyReserved
	}

	room.Capacity--
	res.ID = r.s.nextResID
	r.s.nextResID++
	cp := *res
	r.s.reservations[res.ID] = &cp

	return nil
}

func (r fakeReservationRepo) Cancel(_ context.Context, id int64, userName string) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	if res.UserName != userName {
		return nil, domain.ErrNotAuthorized
	}

	if room, ok := r.s.rooms[res.RoomID]; ok {
		room.Capacity++
	}
	delete(r.s.reservations, id)
	cp := *res

	return &cp, nil
}

func (r fakeReservationRepo) Get(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	cp := *res

	return &cp, nil
}

func (r fakeReservationRepo) FindOverlapping(_ context.Context, roomID int64, start, end time.Time) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if res := r.s.overlapping(roomID, start, end); res != nil {
		cp := *res
		return &cp, nil
	}

	return nil, nil
}

func (r fakeReservationRepo) ListByRoom(_ context.Context, roomID int64, limit, offset int) ([]domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Reservation, 0)
	for id := int64(1); id < r.s.nextResID; id++ {
		res, ok := r.s.reservations[id]
		if ok && res.RoomID == roomID {
			out = append(out, *res)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
