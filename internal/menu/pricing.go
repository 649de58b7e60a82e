package menu

import "github.com/shopspring/decimal"

// UnitPrice computes the price of one unit of a customizable item: the base
// price plus the surcharge of every selected paid ingredient. Selections are
// deduplicated by id, ids missing from the catalog are ignored (the catalog
// may have evolved since the client cached it), and zero-price ingredients
// contribute nothing regardless of selection state.
func (c Catalog) UnitPrice(basePrice decimal.Decimal, selectedIngredientIDs []string) decimal.Decimal {
	price := basePrice
	seen := make(map[string]bool, len(selectedIngredientIDs))
	for _, id := range selectedIngredientIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ing, ok := c.ingredientsByID[id]
		if !ok || !ing.Price.IsPositive() {
			continue
		}
		price = price.Add(ing.Price)
	}
	return price
}

// PricedLine is the minimal view of a cart line the total calculation needs.
type PricedLine struct {
	UnitPrice decimal.Decimal
	Quantity  int32
}

// CartTotal sums unitPrice x quantity over all lines. Lines with a
// non-positive quantity should not exist and are excluded if they occur;
// the result is never negative.
func CartTotal(lines []PricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity)))
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
