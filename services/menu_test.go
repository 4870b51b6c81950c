package services

import (
	"context"
	"errors"
	"testing"

	"food-details/api"
	"food-details/models"
)

func TestLoad(t *testing.T) {
	b := newFakeBackend()
	b.foods[1] = seedFood()

	s, err := Load(context.Background(), b, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Loaded || s.Food.Name != "Ao molho" {
		t.Errorf("food not loaded: %+v", s.Food)
	}
	if len(s.Extras) != 2 || s.Extras[0].Quantity != 0 {
		t.Errorf("extras = %+v, want two with quantity 0", s.Extras)
	}
	if s.IsFavorite {
		t.Error("IsFavorite should be false with no favorites")
	}
	if s.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", s.Quantity)
	}
}

func TestLoad_FavoriteFlag(t *testing.T) {
	b := newFakeBackend()
	b.foods[1] = seedFood()
	b.favorites[1] = models.FavoriteFromFood(seedFood())
	b.favorites[7] = models.Favorite{ID: 7}

	s, err := Load(context.Background(), b, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.IsFavorite {
		t.Error("IsFavorite should be true when favorites contain the id")
	}
}

func TestLoad_FoodFailureKeepsFavorites(t *testing.T) {
	b := newFakeBackend()
	b.favorites[1] = models.Favorite{ID: 1}

	s, err := Load(context.Background(), b, 1)
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if s.Loaded {
		t.Error("food should not be loaded")
	}
	if !s.IsFavorite {
		t.Error("favorites branch should still apply")
	}
}

func TestLoad_FavoritesFailureKeepsFood(t *testing.T) {
	b := newFakeBackend()
	b.foods[1] = seedFood()
	b.favErr = errors.New("timeout")

	s, err := Load(context.Background(), b, 1)
	if err == nil {
		t.Fatal("expected favorites error")
	}
	if !s.Loaded {
		t.Error("food branch should still apply")
	}
	if s.IsFavorite {
		t.Error("IsFavorite should stay at its default")
	}
}

func TestLoad_BothFail(t *testing.T) {
	b := newFakeBackend()
	foodErr := errors.New("food down")
	favErr := errors.New("favorites down")
	b.foodErr, b.favErr = foodErr, favErr

	_, err := Load(context.Background(), b, 1)
	if !errors.Is(err, foodErr) || !errors.Is(err, favErr) {
		t.Errorf("err = %v, want both errors joined", err)
	}
}

func TestLoad_InvalidID(t *testing.T) {
	_, err := Load(context.Background(), newFakeBackend(), 0)
	if !errors.Is(err, ErrInvalidFoodID) {
		t.Errorf("err = %v, want ErrInvalidFoodID", err)
	}
}

func TestLoad_FetchesConcurrently(t *testing.T) {
	b := newRendezvousBackend(0)
	b.foods[1] = seedFood()
	b.favorites[1] = models.Favorite{ID: 1}

	s, err := Load(context.Background(), b, 1)
	if err != nil {
		t.Fatalf("Load: %v (food and favorites must be requested together)", err)
	}
	if !s.Loaded || !s.IsFavorite {
		t.Errorf("state = %+v, want loaded favorite", s)
	}
}
