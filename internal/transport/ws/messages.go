package ws

// Типы событий, которые уходят подписчикам комнаты
const (
	TypeState                = "state"                 // снапшот текущих броней комнаты
	TypeReservationCreated   = "reservation_created"   // появилась новая бронь
	TypeReservationCancelled = "reservation_cancelled" // бронь снята владельцем
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type StatePayload struct {
	RoomID       int64                  `json:"room_id"`
	Reservations []ReservationStateItem `json:"reservations"`
}

type ReservationStateItem struct {
	ReservationID int64  `json:"reservation_id"`
	UserName      string `json:"user_name"`
	StartUnix     int64  `json:"start_unix"`
	EndUnix       int64  `json:"end_unix"`
}

type ReservationEventPayload struct {
	RoomID        int64  `json:"room_id"`
	ReservationID int64  `json:"reservation_id"`
	UserName      string `json:"user_name"`
	StartUnix     int64  `json:"start_unix"`
	EndUnix       int64  `json:"end_unix"`
}
