package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/cart"
	"github.com/mamba-foods/stall-api/internal/menu"
	"github.com/mamba-foods/stall-api/internal/middleware"
)

// CartHandler manages the per-session cart. Every endpoint resolves the
// caller's cart from the session id in their token; carts are created
// lazily on first touch.
type CartHandler struct {
	registry *cart.Registry
	catalog  menu.Catalog
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(registry *cart.Registry, catalog menu.Catalog) *CartHandler {
	return &CartHandler{registry: registry, catalog: catalog}
}

// RegisterRoutes registers cart endpoints on the given Chi router.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cart", h.Get)
	r.Post("/cart/items", h.AddItem)
	r.Patch("/cart/items/{iid}", h.ChangeQuantity)
	r.Delete("/cart/items/{iid}", h.RemoveItem)
}

// --- Request / Response types ---

type addItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int32  `json:"quantity"`
	// Selections nil means default ingredients; an empty array deselects
	// everything. Ignored for non-customizable items.
	Selections []string `json:"selections"`
	SelectAll  bool     `json:"select_all"`
	Notes      string   `json:"notes"`
}

type changeQuantityRequest struct {
	Delta int32 `json:"delta"`
}

type cartResponse struct {
	Items []cart.Line `json:"items"`
	Total string      `json:"total"`
}

func cartToResponse(c *cart.Cart) cartResponse {
	return cartResponse{
		Items: c.Lines(),
		Total: c.Total().StringFixed(2),
	}
}

// --- Handlers ---

// Get handles GET /cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	c := h.registry.Get(claims.SessionID)
	writeJSON(w, http.StatusOK, cartToResponse(c))
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, ok := h.catalog.Item(req.MenuItemID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown menu item"})
		return
	}

	selections := req.Selections
	if req.SelectAll {
		// Quick-add shortcut: replace the selection with every ingredient.
		selections = h.catalog.AllIngredientIDs()
	}

	c := h.registry.Get(claims.SessionID)
	line := c.AddItem(item, req.Quantity, selections, req.Notes)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"line": line,
		"cart": cartToResponse(c),
	})
}

// ChangeQuantity handles PATCH /cart/items/{iid}. A delta that drops the
// quantity to zero or below removes the line. Unknown instance ids are a
// no-op so stale UI events return the current cart unchanged.
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	instanceID, err := uuid.Parse(chi.URLParam(r, "iid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item instance ID"})
		return
	}

	var req changeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	c := h.registry.Get(claims.SessionID)
	c.ChangeQuantity(instanceID, req.Delta)

	writeJSON(w, http.StatusOK, cartToResponse(c))
}

// RemoveItem handles DELETE /cart/items/{iid}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	instanceID, err := uuid.Parse(chi.URLParam(r, "iid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item instance ID"})
		return
	}

	c := h.registry.Get(claims.SessionID)
	c.RemoveItem(instanceID)

	writeJSON(w, http.StatusOK, cartToResponse(c))
}
