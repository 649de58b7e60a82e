package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one frozen entry of an order's cart snapshot. Prices are
// captured at add-to-cart time and never recomputed from the live menu.
type LineItem struct {
	Name           string          `json:"name"`
	Quantity       int32           `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Customizations []string        `json:"customizations,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// Order is a placed, paid order. It is created exactly once per successful
// payment, mutated only by status transitions, and never deleted.
type Order struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Items      []LineItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Status     Status          `json:"status"`
	PaymentRef string          `json:"payment_ref"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
