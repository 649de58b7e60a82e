package menu

import "github.com/shopspring/decimal"

// Stall returns the Mamba Foods catalog. Prices are in INR.
func Stall() Catalog {
	return NewCatalog(
		[]IngredientGroup{
			{
				Name: "Vegetables",
				Ingredients: []Ingredient{
					{ID: "onion", Name: "Onion", Price: rupees(0), Default: true},
					{ID: "corn", Name: "Corn", Price: rupees(0), Default: true},
					{ID: "capsicum", Name: "Capsicum", Price: rupees(0), Default: true},
					{ID: "tomato", Name: "Tomato", Price: rupees(0), Default: true},
					{ID: "mushroom", Name: "Mushroom", Price: rupees(10)},
					{ID: "cabbage", Name: "Cabbage", Price: rupees(0), Default: true},
					{ID: "carrot", Name: "Carrot", Price: rupees(0), Default: true},
					{ID: "beetroot", Name: "Beetroot", Price: rupees(0), Default: true},
				},
			},
			{
				Name: "Pulses",
				Ingredients: []Ingredient{
					{ID: "chana", Name: "Chana", Price: rupees(0)},
					{ID: "sprouts", Name: "Sprouts", Price: rupees(0)},
					{ID: "bean", Name: "Bean", Price: rupees(0)},
				},
			},
			{
				Name: "Sauces & Toppings",
				Ingredients: []Ingredient{
					{ID: "cheese", Name: "Cheese (Extra)", Price: rupees(15)},
					{ID: "paneer", Name: "Add Paneer", Price: rupees(20)},
					{ID: "red-ketchup", Name: "Red Ketchup", Price: rupees(0), Default: true},
					{ID: "schezwan", Name: "Schezwan Chutney", Price: rupees(0), Default: true},
					{ID: "mayonnaise", Name: "Mayonnaise", Price: rupees(10)},
					{ID: "tandoori-sauce", Name: "Tandoori Sauce", Price: rupees(10)},
				},
			},
		},
		[]MenuItem{
			{ID: "frankie", Name: "Frankie", BasePrice: rupees(60), Category: "Rolls", Customizable: true},
			{ID: "bhel", Name: "Bhel Puri", BasePrice: rupees(30), Category: "Chaat"},
			{ID: "mix-chips", Name: "Mix Chips (Large)", BasePrice: rupees(40), Category: "Snacks", Customizable: true},
		},
	)
}

func rupees(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
