package server_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"food-details/api"
	"food-details/server"
	"food-details/services"

	"github.com/shopspring/decimal"
)

// TestScreenAgainstBackend drives a full screen session through the HTTP
// client against the reference router.
func TestScreenAgainstBackend(t *testing.T) {
	store := newMockStore()
	seedFood(store)
	srv := httptest.NewServer(server.NewRouter(store))
	defer srv.Close()

	client := api.New(srv.URL, 5*time.Second)
	ctx := context.Background()

	s, err := services.Load(ctx, client, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.IsFavorite {
		t.Error("nothing is favorited yet")
	}

	s, err = services.ToggleFavorite(ctx, client, s)
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if _, ok := store.favorites[1]; !ok || !s.IsFavorite {
		t.Fatal("favorite should be stored and flagged")
	}

	s, _ = s.IncrementExtra(1)
	s, _ = s.IncrementItem()
	s, _ = s.IncrementItem()
	// (19.90 + 1.50) × 3
	if want := decimal.RequireFromString("64.2"); !services.Total(s).Equal(want) {
		t.Errorf("Total = %s, want %s", services.Total(s), want)
	}

	res, err := services.SubmitOrder(ctx, client, s, 0)
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if res.Placed != 3 || len(store.orders) != 3 {
		t.Errorf("placed = %d stored = %d, want 3", res.Placed, len(store.orders))
	}

	reloaded, err := services.Load(ctx, client, 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsFavorite {
		t.Error("favorite flag should survive a reload")
	}
}
