package domain

import "errors"

// Code — стабильный машинный код причины отказа.
type Code string

const (
	CodeInvalidTimeRange    Code = "invalid_time_range"
	CodeInvalidStartTime    Code = "invalid_start_time"
	CodeRoomNotFound        Code = "room_not_found"
	CodeRoomCapacityFull    Code = "room_capacity_full"
	CodeRoomAlreadyReserved Code = "room_already_reserved"
	CodeInvalidCapacity     Code = "invalid_capacity"
	CodeReservationNotFound Code = "reservation_not_found"
	CodeNotAuthorized       Code = "not_authorized"
	CodeUserNotFound        Code = "user_not_found"
	CodeUserAlreadyExists   Code = "user_already_exists"
	CodeInvalidCredentials  Code = "invalid_credentials"
	CodeInvalidToken        Code = "invalid_token"
	CodeInvalidUsername     Code = "invalid_username"
	CodeInvalidRoomName     Code = "invalid_room_name"
	CodePasswordTooShort    Code = "password_too_short"
	CodeEmptyPasswordHash   Code = "empty_password_hash"
)

// Rejection — ожидаемый отказ бизнес-логики: код + человекочитаемое сообщение.
// Сбои хранилища сюда не попадают, они идут обычными обёрнутыми ошибками.
type Rejection struct {
	Code    Code
	Message string
}

func (r *Rejection) Error() string { return r.Message }

var (
	ErrInvalidTimeRange    = &Rejection{CodeInvalidTimeRange, "start_time should be lower than end_time"}
	ErrInvalidStartTime    = &Rejection{CodeInvalidStartTime, "start_time should not be in the past"}
	ErrRoomNotFound        = &Rejection{CodeRoomNotFound, "room does not exist"}
	ErrRoomCapacityFull    = &Rejection{CodeRoomCapacityFull, "room capacity is already full"}
	ErrRoomAlreadyReserved = &Rejection{CodeRoomAlreadyReserved, "room already reserved for this time"}
	ErrInvalidCapacity     = &Rejection{CodeInvalidCapacity, "room capacity should be greater than 0"}
	ErrReservationNotFound = &Rejection{CodeReservationNotFound, "reservation not found"}
	ErrNotAuthorized       = &Rejection{CodeNotAuthorized, "user not authorized to cancel reservation"}
	ErrUserNotFound        = &Rejection{CodeUserNotFound, "user not found"}
	ErrUserAlreadyExists   = &Rejection{CodeUserAlreadyExists, "user already exists"}
	ErrInvalidCredentials  = &Rejection{CodeInvalidCredentials, "invalid credentials"}
	ErrInvalidToken        = &Rejection{CodeInvalidToken, "invalid token"}
	ErrInvalidUsername     = &Rejection{CodeInvalidUsername, "username is required"}
	ErrInvalidRoomName     = &Rejection{CodeInvalidRoomName, "room name is required"}
	ErrPasswordTooShort    = &Rejection{CodePasswordTooShort, "password too short"}
	ErrEmptyPasswordHash   = &Rejection{CodeEmptyPasswordHash, "empty password hash"}
)

// AsRejection возвращает *Rejection из цепочки ошибок, если он там есть.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}

	return nil, false
}
