package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/cart"
	"github.com/mamba-foods/stall-api/internal/config"
	"github.com/mamba-foods/stall-api/internal/database"
	"github.com/mamba-foods/stall-api/internal/menu"
	"github.com/mamba-foods/stall-api/internal/order"
	"github.com/mamba-foods/stall-api/internal/store"
)

// Seeds demo orders so the kitchen display has something to show during
// development. Orders get real per-day numbers from the store.
func main() {
	count := flag.Int("count", 5, "Number of demo orders to create")
	flag.Parse()

	cfg := config.Load()

	ctx := context.Background()

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	st := store.NewPostgres(pool)
	catalog := menu.Stall()

	// Each demo order is one customizable frankie plus a bhel, built through
	// the same cart path the checkout flow uses.
	selections := [][]string{
		nil, // catalog defaults
		{"onion", "paneer", "schezwan"},
		{"corn", "cheese", "mushroom", "mayonnaise"},
	}

	frankie, _ := catalog.Item("frankie")
	bhel, _ := catalog.Item("bhel")

	for i := 0; i < *count; i++ {
		c := cart.New(catalog)
		c.AddItem(frankie, int32(i%2+1), selections[i%len(selections)], "")
		c.AddItem(bhel, 1, nil, "")

		created, err := st.CreateOrder(ctx, order.Order{
			CustomerID: uuid.New(),
			Items:      c.Snapshot(),
			Total:      c.Total(),
			Status:     order.StatusNew,
			PaymentRef: "seed",
		})
		if err != nil {
			log.Fatalf("create demo order: %v", err)
		}
		log.Printf("Created order %s (%s, total %s)", created.Number, created.ID, created.Total.StringFixed(2))
	}

	log.Printf("Seeded %d demo orders", *count)
}
