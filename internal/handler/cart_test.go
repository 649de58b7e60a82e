package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/cart"
	"github.com/mamba-foods/stall-api/internal/handler"
	"github.com/mamba-foods/stall-api/internal/menu"
	"github.com/mamba-foods/stall-api/internal/middleware"
)

type cartResp struct {
	Items []struct {
		InstanceID string   `json:"instance_id"`
		MenuItemID string   `json:"menu_item_id"`
		Quantity   int32    `json:"quantity"`
		UnitPrice  string   `json:"unit_price"`
		Selections []string `json:"selections"`
	} `json:"items"`
	Total string `json:"total"`
}

func newCartRouter() (chi.Router, *cart.Registry) {
	catalog := menu.Stall()
	registry := cart.NewRegistry(catalog)

	r := chi.NewRouter()
	r.Use(middleware.Authenticate(testSecret))
	handler.NewCartHandler(registry, catalog).RegisterRoutes(r)
	return r, registry
}

func TestCartAddItem(t *testing.T) {
	router, _ := newCartRouter()
	token := customerToken(t, uuid.New())

	rr := postJSON(t, router, "/cart/items", token, map[string]interface{}{
		"menu_item_id": "frankie",
		"quantity":     1,
		"selections":   []string{"onion", "paneer", "mushroom"},
		"notes":        "less oil",
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp struct {
		Cart cartResp `json:"cart"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(resp.Cart.Items))
	}
	// 60 base + 20 paneer + 10 mushroom
	if resp.Cart.Total != "90.00" {
		t.Errorf("total: got %s, want 90.00", resp.Cart.Total)
	}
}

func TestCartAddItem_UnknownMenuItem(t *testing.T) {
	router, _ := newCartRouter()

	rr := postJSON(t, router, "/cart/items", customerToken(t, uuid.New()), map[string]interface{}{
		"menu_item_id": "pizza",
		"quantity":     1,
	})

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCartAddItem_SelectAll(t *testing.T) {
	router, registry := newCartRouter()
	sessionID := uuid.New()

	rr := postJSON(t, router, "/cart/items", customerToken(t, sessionID), map[string]interface{}{
		"menu_item_id": "frankie",
		"quantity":     1,
		"select_all":   true,
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}

	lines := registry.Get(sessionID).Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if got, want := len(lines[0].Selections), len(menu.Stall().AllIngredientIDs()); got != want {
		t.Errorf("selections: got %d ingredients, want %d", got, want)
	}
}

func TestCartNonCustomizableMergesAcrossRequests(t *testing.T) {
	router, _ := newCartRouter()
	token := customerToken(t, uuid.New())

	for i := 0; i < 2; i++ {
		rr := postJSON(t, router, "/cart/items", token, map[string]interface{}{
			"menu_item_id": "bhel",
			"quantity":     1,
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
		}
	}

	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp cartResp
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("bhel should merge into one line, got %d", len(resp.Items))
	}
	if resp.Items[0].Quantity != 2 {
		t.Errorf("quantity: got %d, want 2", resp.Items[0].Quantity)
	}
	if resp.Total != "60.00" {
		t.Errorf("total: got %s, want 60.00", resp.Total)
	}
}

func TestCartChangeQuantityToZeroRemovesLine(t *testing.T) {
	router, registry := newCartRouter()
	sessionID := uuid.New()
	token := customerToken(t, sessionID)

	postJSON(t, router, "/cart/items", token, map[string]interface{}{
		"menu_item_id": "bhel",
		"quantity":     1,
	})

	lines := registry.Get(sessionID).Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	req := httptest.NewRequest("PATCH", "/cart/items/"+lines[0].InstanceID.String(),
		jsonBody(t, map[string]int{"delta": -1}))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}

	var resp cartResp
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("line should be removed when quantity hits zero, got %d lines", len(resp.Items))
	}
	if resp.Total != "0.00" {
		t.Errorf("total: got %s, want 0.00", resp.Total)
	}
}

func TestCartRemoveUnknownInstanceIsNoOp(t *testing.T) {
	router, registry := newCartRouter()
	sessionID := uuid.New()
	token := customerToken(t, sessionID)

	postJSON(t, router, "/cart/items", token, map[string]interface{}{
		"menu_item_id": "bhel",
		"quantity":     1,
	})

	req := httptest.NewRequest("DELETE", "/cart/items/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	if got := len(registry.Get(sessionID).Lines()); got != 1 {
		t.Errorf("unknown instance id must not change the cart, got %d lines", got)
	}
}

func TestCartIsPerSession(t *testing.T) {
	router, _ := newCartRouter()
	tokenA := customerToken(t, uuid.New())
	tokenB := customerToken(t, uuid.New())

	postJSON(t, router, "/cart/items", tokenA, map[string]interface{}{
		"menu_item_id": "bhel",
		"quantity":     1,
	})

	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+tokenB)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp cartResp
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("session B should have an empty cart, got %d lines", len(resp.Items))
	}
}
