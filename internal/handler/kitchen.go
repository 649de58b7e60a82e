package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/middleware"
	"github.com/mamba-foods/stall-api/internal/order"
	"github.com/mamba-foods/stall-api/internal/store"
)

// KitchenStore defines the database methods needed by kitchen handlers.
type KitchenStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, s order.Status) (order.Order, error)
}

// KitchenHandler serves the staff kitchen display: the full order queue and
// the single advance action that moves an order one step forward.
type KitchenHandler struct {
	store KitchenStore
	feed  Notifier
}

// NewKitchenHandler creates a new KitchenHandler.
func NewKitchenHandler(store KitchenStore, feed Notifier) *KitchenHandler {
	return &KitchenHandler{store: store, feed: feed}
}

// RegisterRoutes registers kitchen endpoints on the given Chi router.
// Expected to be mounted behind RequireRole(auth.RoleStaff).
func (h *KitchenHandler) RegisterRoutes(r chi.Router) {
	r.Get("/kitchen/orders", h.List)
	r.Post("/kitchen/orders/{id}/advance", h.Advance)
}

// --- Response types ---

type kitchenOrderResponse struct {
	order.Order
	StatusLabel string `json:"status_label"`
	Action      string `json:"action,omitempty"`
	Terminal    bool   `json:"terminal"`
}

func kitchenOrderToResponse(o order.Order) kitchenOrderResponse {
	action, ok := o.Status.ActionLabel()
	return kitchenOrderResponse{
		Order:       o,
		StatusLabel: o.Status.Label(),
		Action:      action,
		Terminal:    !ok,
	}
}

// --- Handlers ---

// List handles GET /kitchen/orders. Every order is returned, newest first,
// each carrying the label for the button that advances it.
func (h *KitchenHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: list kitchen orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]kitchenOrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = kitchenOrderToResponse(o)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Advance handles POST /kitchen/orders/{id}/advance. The request body is
// empty; the current status alone determines the next one. Advancing a
// COLLECTED order returns the order unchanged. A failed write returns 500
// and changes nothing; pressing the button again retries.
func (h *KitchenHandler) Advance(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("ERROR: get order for advance: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	next, ok := order.NextStatus(o.Status)
	if !ok {
		// Terminal. No write, no broadcast.
		writeJSON(w, http.StatusOK, kitchenOrderToResponse(o))
		return
	}

	updated, err := h.store.UpdateStatus(r.Context(), orderID, next)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: advance order %s: %v", orderID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.feed.Notify(r.Context(), updated)

	writeJSON(w, http.StatusOK, kitchenOrderToResponse(updated))
}
