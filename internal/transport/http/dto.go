package http

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type CreateRoomRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int64  `json:"capacity"`
}

type RoomItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int64  `json:"capacity"`
}

type RoomsListResponse struct {
	Items  []RoomItem `json:"items"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

type CreateReservationRequest struct {
	RoomID    int64     `json:"room_id"`
	UserName  string    `json:"user_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type ReservationItem struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	UserName  string    `json:"user_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type ReservationsListResponse struct {
	Items  []ReservationItem `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type AvailabilityResponse struct {
	RoomID    int64 `json:"room_id"`
	Available bool  `json:"available"`
}

type CancelResponse struct {
	Message string `json:"message"`
}
