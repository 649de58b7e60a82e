package menu

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testCatalog() Catalog {
	return NewCatalog(
		[]IngredientGroup{
			{
				Name: "Toppings",
				Ingredients: []Ingredient{
					{ID: "free-a", Name: "Free A", Price: decimal.Zero, Default: true},
					{ID: "free-b", Name: "Free B", Price: decimal.Zero},
					{ID: "paid-20", Name: "Paid 20", Price: decimal.NewFromInt(20)},
					{ID: "paid-10", Name: "Paid 10", Price: decimal.NewFromInt(10)},
				},
			},
		},
		[]MenuItem{
			{ID: "roll", Name: "Roll", BasePrice: decimal.NewFromInt(60), Customizable: true},
		},
	)
}

func TestUnitPricePaidIngredients(t *testing.T) {
	c := testCatalog()

	got := c.UnitPrice(decimal.NewFromInt(60), []string{"paid-20", "paid-10"})
	if !got.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("unit price: got %s, want 90", got)
	}
}

func TestUnitPriceZeroPriceInvariant(t *testing.T) {
	c := testCatalog()
	base := decimal.NewFromInt(60)

	with := c.UnitPrice(base, []string{"free-a", "free-b", "paid-20"})
	without := c.UnitPrice(base, []string{"paid-20"})
	if !with.Equal(without) {
		t.Fatalf("toggling free ingredients changed price: %s vs %s", with, without)
	}
}

func TestUnitPriceMonotonic(t *testing.T) {
	c := testCatalog()
	base := decimal.NewFromInt(60)

	selections := [][]string{
		nil,
		{"paid-10"},
		{"paid-10", "paid-20"},
	}

	prev := decimal.Zero
	for i, sel := range selections {
		got := c.UnitPrice(base, sel)
		if got.LessThan(prev) {
			t.Fatalf("selection %d: price %s decreased below %s", i, got, prev)
		}
		prev = got
	}
}

func TestUnitPriceIgnoresUnknownAndDuplicates(t *testing.T) {
	c := testCatalog()
	base := decimal.NewFromInt(60)

	got := c.UnitPrice(base, []string{"paid-10", "paid-10", "ghost"})
	if !got.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("got %s, want 70", got)
	}
}

func TestCartTotal(t *testing.T) {
	lines := []PricedLine{
		{UnitPrice: decimal.NewFromInt(90), Quantity: 3},
		{UnitPrice: decimal.NewFromInt(30), Quantity: 1},
	}

	got := CartTotal(lines)
	if !got.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("got %s, want 300", got)
	}
}

func TestCartTotalExcludesNonPositiveQuantities(t *testing.T) {
	lines := []PricedLine{
		{UnitPrice: decimal.NewFromInt(90), Quantity: 0},
		{UnitPrice: decimal.NewFromInt(30), Quantity: -2},
	}

	if got := CartTotal(lines); !got.IsZero() {
		t.Fatalf("got %s, want 0", got)
	}
}

func TestStallCatalogDefaults(t *testing.T) {
	c := Stall()

	defaults := c.DefaultSelections()
	for _, id := range defaults {
		ing, ok := c.Ingredient(id)
		if !ok {
			t.Fatalf("default selection %q missing from catalog", id)
		}
		if !ing.Default {
			t.Errorf("%q returned as default but not flagged", id)
		}
	}

	// Defaults are all free: toggling them must not change the Frankie price.
	frankie, ok := c.Item("frankie")
	if !ok {
		t.Fatal("frankie missing from catalog")
	}
	if got := c.UnitPrice(frankie.BasePrice, defaults); !got.Equal(frankie.BasePrice) {
		t.Fatalf("default selections changed base price: got %s", got)
	}
}
