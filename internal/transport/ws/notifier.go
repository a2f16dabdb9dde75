package ws

import (
	"github.com/sheory/smart-room/internal/domain"
)

// Notifier транслирует события жизненного цикла брони подписчикам комнаты.
// Реализует service.Events; вызывается после коммита транзакции.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) ReservationCreated(res *domain.Reservation) {
	n.hub.Broadcast(res.RoomID, Message{
		Type:    TypeReservationCreated,
		Payload: eventPayload(res),
	})
}

func (n *Notifier) ReservationCancelled(res *domain.Reservation) {
	n.hub.Broadcast(res.RoomID, Message{
		Type:    TypeReservationCancelled,
		Payload: eventPayload(res),
	})
}

func eventPayload(res *domain.Reservation) ReservationEventPayload {
	return ReservationEventPayload{
		RoomID:        res.RoomID,
		ReservationID: res.ID,
		UserName:      res.UserName,
		StartUnix:     res.StartTime.Unix(),
		EndUnix:       res.EndTime.Unix(),
	}
}
