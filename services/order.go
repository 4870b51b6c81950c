package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"food-details/models"

	"golang.org/x/sync/errgroup"
)

// SubmitResult tells how many of the requested order lines the backend took.
type SubmitResult struct {
	Requested int
	Placed    int
}

// Partial reports that some but not all lines were accepted.
func (r SubmitResult) Partial() bool {
	return r.Placed > 0 && r.Placed < r.Requested
}

// BuildOrder returns the order line sent once per unit of quantity.
func BuildOrder(s FoodDetails) models.Order {
	return models.Order{
		ID:           0,
		ProductID:    s.Food.ID,
		Name:         s.Food.Name,
		Description:  s.Food.Description,
		Price:        s.Food.Price,
		Category:     s.Food.Category,
		ThumbnailURL: s.Food.ThumbnailURL,
		Extras:       s.SelectedExtras(),
	}
}

// SubmitOrder posts one identical order line per unit of s.Quantity. Requests
// run concurrently; limit > 0 caps how many are in flight. There is no
// rollback: lines accepted before a failure stay accepted and are counted in
// the result.
func SubmitOrder(ctx context.Context, b Backend, s FoodDetails, limit int) (SubmitResult, error) {
	if !s.Loaded {
		return SubmitResult{}, ErrNoFood
	}
	order := BuildOrder(s)
	res := SubmitResult{Requested: s.Quantity}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := 0; i < s.Quantity; i++ {
		g.Go(func() error {
			err := b.CreateOrder(ctx, order)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return err
			}
			res.Placed++
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		return res, fmt.Errorf("%d of %d order lines failed: %w", len(errs), res.Requested, errors.Join(errs...))
	}
	return res, nil
}
