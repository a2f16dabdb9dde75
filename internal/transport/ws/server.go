package ws

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sheory/smart-room/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type ReservationLister interface {
	ListRoomReservations(ctx context.Context, roomID int64, limit, offset int) ([]domain.Reservation, error)
}

type TokenResolver interface {
	CurrentUser(ctx context.Context, token string) (string, error)
}

type Server struct {
	upgrader     websocket.Upgrader
	hub          *Hub
	reservations ReservationLister
	auth         TokenResolver

	pingEvery time.Duration
}

func NewServer(hub *Hub, reservations ReservationLister, auth TokenResolver) *Server {
	return &Server{
		hub:          hub,
		reservations: reservations,
		auth:         auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws/rooms/{id}?access_token=...
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("access_token"))
	if token == "" {
		http.Error(w, "missing access_token", http.StatusUnauthorized)
		return
	}
	if _, err := s.auth.CurrentUser(r.Context(), token); err != nil {
		http.Error(w, "invalid access_token", http.StatusUnauthorized)
		return
	}

	roomID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || roomID <= 0 {
		http.Error(w, "invalid room id", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn, roomID)
	s.hub.Add(c)

	if err := s.sendState(r.Context(), c); err != nil {
		slog.Warn("ws send initial state failed", "room", roomID, "err", err)
	}

	go s.writeLoop(r.Context(), c)
	s.readLoop(c)

	s.hub.Remove(c)

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "room", roomID, "err", err)
	}
}

func (s *Server) sendState(ctx context.Context, c *wsConn) error {
	list, err := s.reservations.ListRoomReservations(ctx, c.roomID, 100, 0)
	if err != nil {
		return err
	}

	items := make([]ReservationStateItem, 0, len(list))
	for _, res := range list {
		items = append(items, ReservationStateItem{
			ReservationID: res.ID,
			UserName:      res.UserName,
			StartUnix:     res.StartTime.Unix(),
			EndUnix:       res.EndTime.Unix(),
		})
	}

	return c.Send(Message{
		Type: TypeState,
		Payload: StatePayload{
			RoomID:       c.roomID,
			Reservations: items,
		},
	})
}

// readLoop только поддерживает соединение живым: входящие сообщения игнорируются,
// канал односторонний (события летят от сервера к подписчикам).
func (s *Server) readLoop(c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 16)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type wsConn struct {
	conn   *websocket.Conn
	roomID int64
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn, roomID int64) *wsConn {
	return &wsConn{
		conn:   c,
		roomID: roomID,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) RoomID() int64 { return c.roomID }
