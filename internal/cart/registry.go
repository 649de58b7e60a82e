package cart

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/menu"
)

// Registry holds one cart per customer session. Carts are ephemeral: they
// live in memory only and disappear on restart or session loss.
type Registry struct {
	mu      sync.Mutex
	catalog menu.Catalog
	carts   map[uuid.UUID]*Cart
}

// NewRegistry creates a Registry pricing carts against the given catalog.
func NewRegistry(catalog menu.Catalog) *Registry {
	return &Registry{
		catalog: catalog,
		carts:   make(map[uuid.UUID]*Cart),
	}
}

// Get returns the cart for a session, creating an empty one on first use.
func (r *Registry) Get(sessionID uuid.UUID) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[sessionID]
	if !ok {
		c = New(r.catalog)
		r.carts[sessionID] = c
	}
	return c
}
