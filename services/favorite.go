package services

import (
	"context"
	"errors"
	"fmt"

	"food-details/api"
	"food-details/models"
)

// ToggleFavorite removes or creates the favorite record for the loaded food
// and flips IsFavorite once the backend has answered. On failure the state is
// returned unchanged together with the error.
//
// Deleting a favorite the backend no longer has counts as success: the flag
// ends up matching the server either way.
func ToggleFavorite(ctx context.Context, b Backend, s FoodDetails) (FoodDetails, error) {
	if !s.Loaded {
		return s, ErrNoFood
	}
	if s.IsFavorite {
		if err := b.RemoveFavorite(ctx, s.Food.ID); err != nil && !errors.Is(err, api.ErrNotFound) {
			return s, fmt.Errorf("remove favorite %d: %w", s.Food.ID, err)
		}
	} else {
		if err := b.AddFavorite(ctx, models.FavoriteFromFood(s.Food)); err != nil {
			return s, fmt.Errorf("add favorite %d: %w", s.Food.ID, err)
		}
	}
	out := s.clone()
	out.IsFavorite = !s.IsFavorite
	return out, nil
}
