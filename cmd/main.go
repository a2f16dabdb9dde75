package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheory/smart-room/config"
	"github.com/sheory/smart-room/internal/postgres"
	"github.com/sheory/smart-room/internal/security"
	"github.com/sheory/smart-room/internal/service"
	httpx "github.com/sheory/smart-room/internal/transport/http"
	"github.com/sheory/smart-room/internal/transport/ws"
	"github.com/sheory/smart-room/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	lg := logger.L()
	lg.Info("starting smart-room",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Postgres.ToPGConfig())
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// --- repos ---
	roomRepo := postgres.NewRoomRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// --- security ---
	signer := security.NewTokenSigner(
		cfg.Security.JWT.Secret,
		cfg.Security.JWT.Issuer,
		cfg.Security.JWT.AccessTTL,
		cfg.Security.JWT.ClockSkew,
	)
	passPolicy := security.BcryptConfig{
		Cost:      cfg.Security.Password.BcryptCost,
		MinLength: cfg.Security.Password.MinLength,
	}

	// --- WS Hub ---
	hub := ws.NewHub()

	// --- services ---
	roomSvc := service.NewRoomService(roomRepo)
	reservationSvc := service.NewReservationService(roomRepo, reservationRepo, ws.NewNotifier(hub), nil)
	authSvc := service.NewAuthService(userRepo, signer, passPolicy, nil)

	wsServer := ws.NewServer(hub, reservationSvc, authSvc)

	// --- HTTP ---
	handler := httpx.NewHandler(roomSvc, reservationSvc)
	authHandler := httpx.NewAuthHandler(authSvc)
	router := httpx.NewRouter(handler, authHandler, authSvc, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		lg.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		lg.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	lg.Info("stopped")
}
