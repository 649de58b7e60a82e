package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mamba-foods/stall-api/internal/auth"
	"github.com/mamba-foods/stall-api/internal/cart"
	"github.com/mamba-foods/stall-api/internal/config"
	"github.com/mamba-foods/stall-api/internal/handler"
	"github.com/mamba-foods/stall-api/internal/menu"
	mw "github.com/mamba-foods/stall-api/internal/middleware"
	"github.com/mamba-foods/stall-api/internal/payment"
	"github.com/mamba-foods/stall-api/internal/store"
	"github.com/mamba-foods/stall-api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, gate *auth.Gate, catalog menu.Catalog, st store.Store, feed *store.Feed, gateway payment.Gateway, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // dev server
			"https://order.mambafoods.in",
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Session routes (public)
	sessionHandler := handler.NewSessionHandler(cfg.JWTSecret, gate)
	sessionHandler.RegisterRoutes(r)

	// Menu (public; the menu screen renders before a session exists)
	menuHandler := handler.NewMenuHandler(catalog)
	menuHandler.RegisterRoutes(r)

	// WebSocket routes (handle auth internally via query param)
	r.Get("/ws/kitchen/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeKitchenWS(hub, st, cfg.JWTSecret, w, r)
	})
	r.Get("/ws/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeOrderWS(hub, st, cfg.JWTSecret, w, r)
	})

	registry := cart.NewRegistry(catalog)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Customer surface
		cartHandler := handler.NewCartHandler(registry, catalog)
		cartHandler.RegisterRoutes(r)

		checkoutHandler := handler.NewCheckoutHandler(registry, gateway, st, feed)
		checkoutHandler.RegisterRoutes(r)

		orderHandler := handler.NewOrderHandler(st)
		orderHandler.RegisterRoutes(r)

		// Staff surface
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(auth.RoleStaff))

			kitchenHandler := handler.NewKitchenHandler(st, feed)
			kitchenHandler.RegisterRoutes(r)
		})
	})

	return r
}
