package menu

import "github.com/shopspring/decimal"

// Ingredient is one toggleable ingredient of a customizable item. Price is
// the surcharge for selecting it; zero-price ingredients can be toggled
// freely with no price effect. Default marks it pre-selected.
type Ingredient struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Default bool            `json:"default"`
}

// IngredientGroup is a named category of ingredients (vegetables, pulses,
// sauces and toppings).
type IngredientGroup struct {
	Name        string       `json:"name"`
	Ingredients []Ingredient `json:"ingredients"`
}

// MenuItem is one entry of the stall's static menu.
type MenuItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Category     string          `json:"category"`
	Customizable bool            `json:"customizable"`
}

// Catalog is the immutable menu configuration. Business logic receives a
// Catalog explicitly; nothing reads menu data from package globals.
type Catalog struct {
	Groups []IngredientGroup
	Items  []MenuItem

	ingredientsByID map[string]Ingredient
	itemsByID       map[string]MenuItem
}

// NewCatalog builds a Catalog with lookup indexes from the given groups and
// items. The inputs are not copied; callers must not mutate them afterwards.
func NewCatalog(groups []IngredientGroup, items []MenuItem) Catalog {
	c := Catalog{
		Groups:          groups,
		Items:           items,
		ingredientsByID: make(map[string]Ingredient),
		itemsByID:       make(map[string]MenuItem),
	}
	for _, g := range groups {
		for _, ing := range g.Ingredients {
			c.ingredientsByID[ing.ID] = ing
		}
	}
	for _, it := range items {
		c.itemsByID[it.ID] = it
	}
	return c
}

// Ingredient looks up an ingredient by id.
func (c Catalog) Ingredient(id string) (Ingredient, bool) {
	ing, ok := c.ingredientsByID[id]
	return ing, ok
}

// Item looks up a menu item by id.
func (c Catalog) Item(id string) (MenuItem, bool) {
	it, ok := c.itemsByID[id]
	return it, ok
}

// DefaultSelections returns the ids of every default-included ingredient
// across all groups, in catalog order.
func (c Catalog) DefaultSelections() []string {
	var ids []string
	for _, g := range c.Groups {
		for _, ing := range g.Ingredients {
			if ing.Default {
				ids = append(ids, ing.ID)
			}
		}
	}
	return ids
}

// AllIngredientIDs returns every ingredient id in catalog order. Used by the
// "quick add all" shortcut, which replaces the current selection wholesale.
func (c Catalog) AllIngredientIDs() []string {
	var ids []string
	for _, g := range c.Groups {
		for _, ing := range g.Ingredients {
			ids = append(ids, ing.ID)
		}
	}
	return ids
}
