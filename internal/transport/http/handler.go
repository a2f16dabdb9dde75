package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sheory/smart-room/internal/domain"
	httpmw "github.com/sheory/smart-room/internal/transport/http/middleware"
	"github.com/sheory/smart-room/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

type RoomSvc interface {
	CreateRoom(ctx context.Context, name, location string, capacity int64) (*domain.Room, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	ListRooms(ctx context.Context, limit, offset int) ([]domain.Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}

type ReservationSvc interface {
	Book(ctx context.Context, roomID int64, userName string, start, end time.Time) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, userName string) (bool, error)
	CheckAvailability(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
	ListRoomReservations(ctx context.Context, roomID int64, limit, offset int) ([]domain.Reservation, error)
}

type Handler struct {
	roomSvc        RoomSvc
	reservationSvc ReservationSvc
}

func NewHandler(room RoomSvc, reservation ReservationSvc) *Handler {
	return &Handler{
		roomSvc:        room,
		reservationSvc: reservation,
	}
}

// POST /rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	room, err := h.roomSvc.CreateRoom(r.Context(), req.Name, req.Location, req.Capacity)
	if err != nil {
		writeError(w, "handler.CreateRoom", err)
		return
	}

	httputil.JSON(w, http.StatusCreated, toRoomItem(room))
}

// GET /rooms?limit=&offset=
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	rooms, err := h.roomSvc.ListRooms(r.Context(), limit, offset)
	if err != nil {
		writeError(w, "handler.ListRooms", err)
		return
	}

	resp := RoomsListResponse{Items: make([]RoomItem, 0, len(rooms)), Limit: limit, Offset: offset}
	for _, rm := range rooms {
		resp.Items = append(resp.Items, toRoomItem(&rm))
	}

	httputil.JSON(w, http.StatusOK, resp)
}

// GET /rooms/{id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	room, err := h.roomSvc.GetRoom(r.Context(), id)
	if err != nil {
		writeError(w, "handler.GetRoom", err)
		return
	}

	httputil.JSON(w, http.StatusOK, toRoomItem(room))
}

// DELETE /rooms/{id}
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.roomSvc.DeleteRoom(r.Context(), id); err != nil {
		writeError(w, "handler.DeleteRoom", err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /rooms/{id}/reservations?limit=&offset=
func (h *Handler) ListRoomReservations(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	limit, offset := pageParams(r)

	list, err := h.reservationSvc.ListRoomReservations(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, "handler.ListRoomReservations", err)
		return
	}

	resp := ReservationsListResponse{Items: make([]ReservationItem, 0, len(list)), Limit: limit, Offset: offset}
	for _, res := range list {
		resp.Items = append(resp.Items, toReservationItem(&res))
	}

	httputil.JSON(w, http.StatusOK, resp)
}

// GET /rooms/{id}/availability?start_time=&end_time=
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start_time"))
	if err != nil {
		httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid start_time, expected RFC 3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end_time"))
	if err != nil {
		httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid end_time, expected RFC 3339"})
		return
	}

	available, err := h.reservationSvc.CheckAvailability(r.Context(), id, start, end)
	if err != nil {
		writeError(w, "handler.CheckAvailability", err)
		return
	}

	httputil.JSON(w, http.StatusOK, AvailabilityResponse{RoomID: id, Available: available})
}

// POST /reservations
func (h *Handler) MakeReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	// user_name из тела; если не передан — берём владельца токена
	if req.UserName == "" {
		req.UserName = httpmw.UsernameFromCtx(r.Context())
	}

	res, err := h.reservationSvc.Book(r.Context(), req.RoomID, req.UserName, req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, "handler.MakeReservation", err)
		return
	}

	httputil.JSON(w, http.StatusCreated, toReservationItem(res))
}

// DELETE /reservations/{id}
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	username := httpmw.UsernameFromCtx(r.Context())

	cancelled, err := h.reservationSvc.Cancel(r.Context(), id, username)
	if err != nil {
		writeError(w, "handler.CancelReservation", err)
		return
	}

	// отмена несуществующей брони — информационный исход, не ошибка
	if !cancelled {
		httputil.JSON(w, http.StatusOK, CancelResponse{Message: "reservation not found"})
		return
	}

	httputil.JSON(w, http.StatusOK, CancelResponse{Message: "reservation cancelled successfully"})
}

// ---- helpers ----

func toRoomItem(rm *domain.Room) RoomItem {
	return RoomItem{
		ID:       rm.ID,
		Name:     rm.Name,
		Location: rm.Location,
		Capacity: rm.Capacity,
	}
}

func toReservationItem(res *domain.Reservation) ReservationItem {
	return ReservationItem{
		ID:        res.ID,
		RoomID:    res.RoomID,
		UserName:  res.UserName,
		StartTime: res.StartTime,
		EndTime:   res.EndTime,
	}
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, false
	}

	return id, true
}

// pageParams возвращает уже зажатые значения: в ответе и в запросе к
// сервису фигурирует одна и та же эффективная страница.
func pageParams(r *http.Request) (int, int) {
	limit := 20
	offset := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			offset = n
		}
	}

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

// writeError мапит Rejection на статус по коду; всё остальное — 500 без деталей.
func writeError(w http.ResponseWriter, op string, err error) {
	if rej, ok := domain.AsRejection(err); ok {
		httputil.JSON(w, rejectionStatus(rej), ErrorResponse{Error: rej.Message, Code: string(rej.Code)})
		return
	}

	slog.Error(op, slog.Any("err", err))
	httputil.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func rejectionStatus(rej *domain.Rejection) int {
	switch rej.Code {
	case domain.CodeRoomNotFound, domain.CodeReservationNotFound, domain.CodeUserNotFound:
		return http.StatusNotFound
	case domain.CodeRoomCapacityFull, domain.CodeRoomAlreadyReserved, domain.CodeUserAlreadyExists:
		return http.StatusConflict
	case domain.CodeNotAuthorized:
		return http.StatusForbidden
	case domain.CodeInvalidCredentials, domain.CodeInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
