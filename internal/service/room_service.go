package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sheory/smart-room/internal/domain"
)

type RoomRepo interface {
	Create(ctx context.Context, room *domain.Room) error
	Get(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, limit, offset int) ([]domain.Room, error)
	Delete(ctx context.Context, id int64) error
}

type RoomService struct {
	roomRepo RoomRepo
}

func NewRoomService(roomRepo RoomRepo) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

// CreateRoom создаёт комнату. Вместимость должна быть строго положительной:
// комната с нулевой вместимостью не принимала бы брони вовсе.
func (s *RoomService) CreateRoom(ctx context.Context, name, location string, capacity int64) (*domain.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidRoomName
	}
	if capacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}

	room := &domain.Room{
		Name:     name,
		Location: strings.TrimSpace(location),
		Capacity: capacity,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("roomRepo.Create: %w", err)
	}
	return room, nil
}

// GetRoom возвращает комнату по ID.
func (s *RoomService) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	return s.roomRepo.Get(ctx, id)
}

// ListRooms возвращает список комнат с limit/offset-пагинацией.
func (s *RoomService) ListRooms(ctx context.Context, limit, offset int) ([]domain.Room, error) {
	limit, offset = clampPage(limit, offset)

	return s.roomRepo.List(ctx, limit, offset)
}

// DeleteRoom удаляет комнату, её брони удаляются каскадом.
func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	return s.roomRepo.Delete(ctx, id)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
