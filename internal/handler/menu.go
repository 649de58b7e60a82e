package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mamba-foods/stall-api/internal/menu"
)

// MenuHandler serves the static stall menu.
type MenuHandler struct {
	catalog menu.Catalog
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(catalog menu.Catalog) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.Get)
}

type menuResponse struct {
	Items            []menu.MenuItem        `json:"items"`
	IngredientGroups []menu.IngredientGroup `json:"ingredient_groups"`
}

// Get handles GET /menu.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, menuResponse{
		Items:            h.catalog.Items,
		IngredientGroups: h.catalog.Groups,
	})
}
