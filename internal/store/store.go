package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/order"
)

// ErrNotFound is returned when an order id matches no row.
var ErrNotFound = errors.New("order not found")

// Store is the boundary to the durable order collection. Orders are created
// exactly once per successful payment and afterwards mutated only by status
// writes; the collection is terminal (no deletes).
type Store interface {
	// CreateOrder persists the order, assigning id, human-facing number and
	// server timestamps, and returns the stored row.
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)

	// GetOrder fetches one order by id.
	GetOrder(ctx context.Context, id uuid.UUID) (order.Order, error)

	// LatestOrderByCustomer fetches the customer's most recently created order.
	LatestOrderByCustomer(ctx context.Context, customerID uuid.UUID) (order.Order, error)

	// ListOrders returns the full collection sorted by creation time,
	// newest first.
	ListOrders(ctx context.Context) ([]order.Order, error)

	// UpdateStatus writes the status field and returns the updated row.
	// The write is last-write-wins; there is no compare-and-swap.
	UpdateStatus(ctx context.Context, id uuid.UUID, s order.Status) (order.Order, error)
}
