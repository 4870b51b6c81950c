package services

import (
	"context"
	"errors"
	"testing"
)

func TestToggleFavorite_TwiceRestoresFlag(t *testing.T) {
	b := newFakeBackend()
	s := loadedState()

	on, err := ToggleFavorite(context.Background(), b, s)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !on.IsFavorite {
		t.Fatal("flag should be on after first toggle")
	}
	fav, ok := b.favorites[1]
	if !ok {
		t.Fatal("favorite record not created")
	}
	if fav.Name != "Ao molho" || !fav.Price.Equal(dec("10")) {
		t.Errorf("favorite record = %+v", fav)
	}

	off, err := ToggleFavorite(context.Background(), b, on)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if off.IsFavorite != s.IsFavorite {
		t.Error("two toggles should restore the original flag")
	}
	if _, ok := b.favorites[1]; ok {
		t.Error("favorite record should be deleted")
	}
}

func TestToggleFavorite_FailureKeepsFlag(t *testing.T) {
	b := newFakeBackend()
	b.toggleErr = errors.New("boom")
	s := loadedState()

	next, err := ToggleFavorite(context.Background(), b, s)
	if !errors.Is(err, b.toggleErr) {
		t.Fatalf("err = %v, want wrapped toggle error", err)
	}
	if next.IsFavorite {
		t.Error("flag must not change when the request fails")
	}
}

func TestToggleFavorite_DeleteMissingConverges(t *testing.T) {
	b := newFakeBackend()
	s := loadedState()
	s.IsFavorite = true // server has no record

	next, err := ToggleFavorite(context.Background(), b, s)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if next.IsFavorite {
		t.Error("flag should be off")
	}
}

func TestToggleFavorite_NotLoaded(t *testing.T) {
	_, err := ToggleFavorite(context.Background(), newFakeBackend(), NewFoodDetails(1))
	if !errors.Is(err, ErrNoFood) {
		t.Errorf("err = %v, want ErrNoFood", err)
	}
}
