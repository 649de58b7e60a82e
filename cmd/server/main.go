package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/mamba-foods/stall-api/internal/auth"
	"github.com/mamba-foods/stall-api/internal/config"
	"github.com/mamba-foods/stall-api/internal/database"
	"github.com/mamba-foods/stall-api/internal/menu"
	"github.com/mamba-foods/stall-api/internal/payment"
	"github.com/mamba-foods/stall-api/internal/router"
	"github.com/mamba-foods/stall-api/internal/store"
	"github.com/mamba-foods/stall-api/internal/ws"
)

func main() {
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

	gate, err := auth.NewGate(cfg.StaffAccessSecret)
	if err != nil {
		log.Fatalf("staff access gate: %v", err)
	}

	st := store.NewPostgres(pool)
	feed := store.NewFeed(st)

	// Missing Razorpay credentials leave the gateway unconfigured: checkout
	// returns 503 but browsing, tracking and the kitchen keep working.
	gateway := payment.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Println("WARNING: Razorpay credentials not set, checkout is disabled")
	}

	hub := ws.NewHub()
	go hub.Run()

	bridge := ws.NewBridge(feed, hub)
	go bridge.Run(ctx)

	r := router.New(cfg, gate, menu.Stall(), st, feed, gateway, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
