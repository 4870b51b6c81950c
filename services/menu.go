package services

import (
	"context"
	"errors"
	"fmt"

	"food-details/models"

	"golang.org/x/sync/errgroup"
)

// Backend is the subset of the food API the screen uses.
// *api.Client implements it.
type Backend interface {
	GetFood(ctx context.Context, id int64) (models.Food, error)
	ListFavorites(ctx context.Context) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, fav models.Favorite) error
	RemoveFavorite(ctx context.Context, id int64) error
	CreateOrder(ctx context.Context, o models.Order) error
}

// Load fetches the food and the favorites list concurrently and folds both
// into a fresh state. The two results fill disjoint fields, so a failure of
// one still leaves the other applied; every failure is returned joined.
func Load(ctx context.Context, b Backend, foodID int64) (FoodDetails, error) {
	s := NewFoodDetails(foodID)
	if foodID <= 0 {
		return s, ErrInvalidFoodID
	}

	var (
		food            models.Food
		favs            []models.Favorite
		foodErr, favErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		f, err := b.GetFood(ctx, foodID)
		if err != nil {
			foodErr = fmt.Errorf("load food %d: %w", foodID, err)
			return foodErr
		}
		food = f
		return nil
	})
	g.Go(func() error {
		list, err := b.ListFavorites(ctx)
		if err != nil {
			favErr = fmt.Errorf("load favorites: %w", err)
			return favErr
		}
		favs = list
		return nil
	})
	// Both branches always run to completion; Wait only reports the first error.
	_ = g.Wait()

	if foodErr == nil {
		s = s.withFood(food)
	}
	if favErr == nil {
		s.IsFavorite = containsFavorite(favs, foodID)
	}
	return s, errors.Join(foodErr, favErr)
}

func containsFavorite(favs []models.Favorite, foodID int64) bool {
	for _, f := range favs {
		if f.ID == foodID {
			return true
		}
	}
	return false
}
