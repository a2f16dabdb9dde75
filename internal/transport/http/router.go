package http

import (
	"net/http"
	"time"

	httpmw "github.com/sheory/smart-room/internal/transport/http/middleware"
	"github.com/sheory/smart-room/internal/transport/ws"
	"github.com/sheory/smart-room/pkg/httputil"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *Handler, ah *AuthHandler, auth httpmw.UserResolver, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(middlewareChi.Compress(5))
	r.Use(httputil.MiddlewareRequestID)
	r.Use(httputil.MiddlewareLogging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// публичные маршруты
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", ah.Register)
		ar.Post("/login", ah.Login)
	})

	// WS endpoint (access_token в query)
	r.Get("/ws/rooms/{id}", wsServer.HandleWS)

	// Все остальные маршруты требуют access-токен
	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware(auth))
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/rooms", func(rm chi.Router) {
			rm.Post("/", h.CreateRoom)
			rm.Get("/", h.ListRooms)

			rm.Route("/{id}", func(rr chi.Router) {
				rr.Get("/", h.GetRoom)
				rr.Delete("/", h.DeleteRoom)
				rr.Get("/reservations", h.ListRoomReservations)
				rr.Get("/availability", h.CheckAvailability)
			})
		})

		pr.Route("/reservations", func(rv chi.Router) {
			rv.Post("/", h.MakeReservation)
			rv.Delete("/{id}", h.CancelReservation)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
