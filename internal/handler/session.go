package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/auth"
)

// SessionHandler issues the tokens both roles run on: anonymous customer
// sessions and staff sessions behind the shared access code.
type SessionHandler struct {
	jwtSecret string
	gate      *auth.Gate
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(jwtSecret string, gate *auth.Gate) *SessionHandler {
	return &SessionHandler{jwtSecret: jwtSecret, gate: gate}
}

// RegisterRoutes registers session endpoints on the given Chi router.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.CreateSession)
	r.Post("/staff/login", h.StaffLogin)
}

// --- Request / Response types ---

type staffLoginRequest struct {
	AccessCode string `json:"access_code"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	SessionID uuid.UUID `json:"session_id"`
	Role      string    `json:"role"`
}

// --- Handlers ---

// CreateSession handles POST /session. Customers are anonymous; a fresh
// session id is minted on every call and identifies the customer's cart
// and orders for the token's lifetime.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.New()
	token, err := auth.GenerateToken(h.jwtSecret, sessionID, auth.RoleCustomer)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:     token,
		SessionID: sessionID,
		Role:      auth.RoleCustomer,
	})
}

// StaffLogin handles POST /staff/login. One shared access code gates the
// kitchen display; there are no individual staff accounts.
func (h *SessionHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var req staffLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.gate.Check(req.AccessCode); err != nil {
		if errors.Is(err, auth.ErrAccessDenied) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "access denied"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	sessionID := uuid.New()
	token, err := auth.GenerateToken(h.jwtSecret, sessionID, auth.RoleStaff)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     token,
		SessionID: sessionID,
		Role:      auth.RoleStaff,
	})
}
