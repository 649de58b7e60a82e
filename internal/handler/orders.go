package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/auth"
	"github.com/mamba-foods/stall-api/internal/middleware"
	"github.com/mamba-foods/stall-api/internal/order"
	"github.com/mamba-foods/stall-api/internal/store"
)

// OrderStore defines the database methods needed by order read handlers.
// Satisfied by *store.Postgres; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (order.Order, error)
	LatestOrderByCustomer(ctx context.Context, customerID uuid.UUID) (order.Order, error)
}

// OrderHandler serves the customer-facing order reads. The store is the
// source of truth for "my latest order"; the client keeps no durable state.
type OrderHandler struct {
	store OrderStore
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore) *OrderHandler {
	return &OrderHandler{store: store}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders/latest", h.Latest)
	r.Get("/orders/{id}", h.Get)
}

// --- Response types ---

type orderResponse struct {
	order.Order
	StatusLabel   string `json:"status_label"`
	StatusMessage string `json:"status_message"`
}

func orderToResponse(o order.Order) orderResponse {
	return orderResponse{
		Order:         o,
		StatusLabel:   o.Status.Label(),
		StatusMessage: o.Status.Message(),
	}
}

// --- Handlers ---

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	o, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	// Customers may only read their own orders
	if claims.Role != auth.RoleStaff && claims.SessionID != o.CustomerID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "order access denied"})
		return
	}

	writeJSON(w, http.StatusOK, orderToResponse(o))
}

// Latest handles GET /orders/latest. Used by the tracking screen to
// reattach after a reload: the most recent order for this session, 404
// when the session has never placed one.
func (h *OrderHandler) Latest(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	o, err := h.store.LatestOrderByCustomer(r.Context(), claims.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no orders for this session"})
			return
		}
		log.Printf("ERROR: latest order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, orderToResponse(o))
}
