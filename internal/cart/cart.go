package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamba-foods/stall-api/internal/menu"
	"github.com/mamba-foods/stall-api/internal/order"
)

// Line is one cart entry: a quantity of one priced configuration of a menu
// item. UnitPrice is frozen when the line is added and never recomputed; a
// menu price change requires removing and re-adding the line.
type Line struct {
	InstanceID   uuid.UUID       `json:"instance_id"`
	MenuItemID   string          `json:"menu_item_id"`
	Name         string          `json:"name"`
	Quantity     int32           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Selections   []string        `json:"selections,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Customizable bool            `json:"customizable"`
}

// Cart is the active customer's in-memory cart. It exists only until order
// placement and is lost on restart, which is tolerated.
type Cart struct {
	mu      sync.Mutex
	catalog menu.Catalog
	lines   []Line
}

// New creates an empty cart priced against the given catalog.
func New(catalog menu.Catalog) *Cart {
	return &Cart{catalog: catalog}
}

// AddItem appends the menu item to the cart. Non-customizable items merge
// into the existing line for that menu item; customizable items always form
// a new line, even when the selections are identical. When selections is nil
// for a customizable item, the catalog's default-included ingredients apply.
// Quantities below 1 are clamped to 1.
func (c *Cart) AddItem(item menu.MenuItem, quantity int32, selections []string, notes string) Line {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !item.Customizable {
		for i := range c.lines {
			if c.lines[i].MenuItemID == item.ID && !c.lines[i].Customizable {
				c.lines[i].Quantity += quantity
				return c.lines[i]
			}
		}
		line := Line{
			InstanceID: uuid.New(),
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   quantity,
			UnitPrice:  item.BasePrice,
			Notes:      notes,
		}
		c.lines = append(c.lines, line)
		return line
	}

	if selections == nil {
		selections = c.catalog.DefaultSelections()
	}
	line := Line{
		InstanceID:   uuid.New(),
		MenuItemID:   item.ID,
		Name:         item.Name,
		Quantity:     quantity,
		UnitPrice:    c.catalog.UnitPrice(item.BasePrice, selections),
		Selections:   selections,
		Notes:        notes,
		Customizable: true,
	}
	c.lines = append(c.lines, line)
	return line
}

// RemoveItem removes the whole line. Unknown instance ids are a no-op so
// double-clicks and stale UI events are harmless.
func (c *Cart) RemoveItem(instanceID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].InstanceID == instanceID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// ChangeQuantity applies a delta to a line's quantity. A resulting quantity
// of zero or less removes the line. Unknown instance ids are a no-op.
func (c *Cart) ChangeQuantity(instanceID uuid.UUID, delta int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].InstanceID != instanceID {
			continue
		}
		q := c.lines[i].Quantity + delta
		if q <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
		c.lines[i].Quantity = q
		return
	}
}

// Clear empties the cart. Called only after an order has been durably
// created, never speculatively.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total delegates to the pricing engine.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	priced := make([]menu.PricedLine, len(c.lines))
	for i, l := range c.lines {
		priced[i] = menu.PricedLine{UnitPrice: l.UnitPrice, Quantity: l.Quantity}
	}
	return menu.CartTotal(priced)
}

// Snapshot freezes the cart into the simplified line items stored on an
// order: name, quantity, unit price, customizations, notes.
func (c *Cart) Snapshot() []order.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]order.LineItem, len(c.lines))
	for i, l := range c.lines {
		items[i] = order.LineItem{
			Name:           l.Name,
			Quantity:       l.Quantity,
			Price:          l.UnitPrice,
			Customizations: l.Selections,
			Notes:          l.Notes,
		}
	}
	return items
}
