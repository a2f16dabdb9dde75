package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sheory/smart-room/pkg/httputil"
)

type AuthSvc interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	AccessTTL() time.Duration
}

type AuthHandler struct {
	svc AuthSvc
}

func NewAuthHandler(svc AuthSvc) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	token, err := h.svc.Register(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeError(w, "handler.Register", err)
		return
	}

	httputil.JSON(w, http.StatusCreated, h.tokenResponse(token))
}

// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	token, err := h.svc.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeError(w, "handler.Login", err)
		return
	}

	httputil.JSON(w, http.StatusOK, h.tokenResponse(token))
}

func (h *AuthHandler) tokenResponse(token string) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.svc.AccessTTL().Seconds()),
	}
}
