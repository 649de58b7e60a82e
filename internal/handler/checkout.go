package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamba-foods/stall-api/internal/cart"
	"github.com/mamba-foods/stall-api/internal/middleware"
	"github.com/mamba-foods/stall-api/internal/order"
	"github.com/mamba-foods/stall-api/internal/payment"
)

// CheckoutStore defines the database methods needed by checkout handlers.
type CheckoutStore interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
}

// Notifier fans a durable order mutation out to realtime subscribers.
type Notifier interface {
	Notify(ctx context.Context, touched order.Order)
}

// pendingCheckout freezes the cart at checkout time. The order is built from
// this snapshot, not from the live cart, so edits made while the payment
// widget is open cannot change what was paid for.
type pendingCheckout struct {
	sessionID uuid.UUID
	items     []order.LineItem
	total     decimal.Decimal
}

// CheckoutHandler runs the payment flow: open a gateway checkout, then turn
// the reported outcome into a durable order. The order is created only after
// the payment signature verifies; there is no unpaid-order state.
type CheckoutHandler struct {
	registry *cart.Registry
	gateway  payment.Gateway
	store    CheckoutStore
	feed     Notifier

	mu      sync.Mutex
	pending map[string]pendingCheckout
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(registry *cart.Registry, gateway payment.Gateway, store CheckoutStore, feed Notifier) *CheckoutHandler {
	return &CheckoutHandler{
		registry: registry,
		gateway:  gateway,
		store:    store,
		feed:     feed,
		pending:  make(map[string]pendingCheckout),
	}
}

// RegisterRoutes registers checkout endpoints on the given Chi router.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout", h.Open)
	r.Post("/checkout/{id}/complete", h.Complete)
}

// --- Request / Response types ---

type completeRequest struct {
	Outcome   string `json:"outcome"` // "success", "failed" or "dismissed"
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
	Reason    string `json:"reason"` // failure description, if the widget gave one
}

// --- Handlers ---

// Open handles POST /checkout. An empty or zero-total cart is rejected
// before the gateway is contacted.
func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	c := h.registry.Get(claims.SessionID)
	total := c.Total()
	if len(c.Lines()) == 0 || !total.IsPositive() {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "cart is empty"})
		return
	}

	session, err := h.gateway.OpenCheckout(r.Context(), payment.CheckoutRequest{
		AmountMinorUnits: total.Shift(2).IntPart(),
		Currency:         "INR",
		Description:      "Stall Order Payment",
		Receipt:          uuid.NewString(),
	})
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "payments are not configured"})
			return
		}
		log.Printf("ERROR: open checkout: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "payment gateway error"})
		return
	}

	h.mu.Lock()
	h.pending[session.GatewayOrderID] = pendingCheckout{
		sessionID: claims.SessionID,
		items:     c.Snapshot(),
		total:     total,
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, session)
}

// Complete handles POST /checkout/{id}/complete, where {id} is the gateway
// order id returned by Open. Failure and dismissal keep the cart intact so
// the customer can try again; a verified success creates the order and only
// then clears the cart.
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	gatewayOrderID := chi.URLParam(r, "id")

	h.mu.Lock()
	pc, ok := h.pending[gatewayOrderID]
	h.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown checkout"})
		return
	}
	if pc.sessionID != claims.SessionID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "checkout access denied"})
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	switch req.Outcome {
	case "failed", "dismissed":
		if req.Reason != "" {
			log.Printf("payment %s not completed: %s", gatewayOrderID, req.Reason)
		}
		h.mu.Lock()
		delete(h.pending, gatewayOrderID)
		h.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"outcome": req.Outcome})
		return
	case "success":
		// fall through to verification
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid outcome"})
		return
	}

	if err := h.gateway.VerifySignature(gatewayOrderID, req.PaymentID, req.Signature); err != nil {
		if errors.Is(err, payment.ErrSignatureMismatch) {
			// Treated as declined. The cart and the pending checkout are
			// untouched so a corrected completion can still land.
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payment could not be verified"})
			return
		}
		log.Printf("ERROR: verify payment signature: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	// Claim the pending checkout before writing the order. Concurrent
	// completions for the same gateway order race to this delete; only the
	// winner creates an order, the rest see 404.
	h.mu.Lock()
	pc, ok = h.pending[gatewayOrderID]
	if ok {
		delete(h.pending, gatewayOrderID)
	}
	h.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown checkout"})
		return
	}

	created, err := h.store.CreateOrder(r.Context(), order.Order{
		CustomerID: pc.sessionID,
		Items:      pc.items,
		Total:      pc.total,
		Status:     order.StatusNew,
		PaymentRef: req.PaymentID,
	})
	if err != nil {
		// The payment is captured but the order is not saved. The claim is
		// rolled back so the cart and pending checkout survive for staff to
		// sort out; nothing retries automatically.
		h.mu.Lock()
		h.pending[gatewayOrderID] = pc
		h.mu.Unlock()
		log.Printf("ERROR: create order after verified payment %s: %v", req.PaymentID, err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"error":         "order could not be saved, please contact staff immediately",
			"contact_staff": true,
			"payment_id":    req.PaymentID,
		})
		return
	}

	h.registry.Get(claims.SessionID).Clear()

	h.feed.Notify(r.Context(), created)

	writeJSON(w, http.StatusCreated, orderToResponse(created))
}
