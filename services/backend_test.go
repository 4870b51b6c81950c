package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"food-details/api"
	"food-details/models"

	"github.com/shopspring/decimal"
)

// --- Fake backend ---

type fakeBackend struct {
	mu        sync.Mutex
	foods     map[int64]models.Food
	favorites map[int64]models.Favorite
	orders    []models.Order

	foodErr   error
	favErr    error
	toggleErr error
	failOrder func(n int) bool // called with the 1-based index of each CreateOrder call
	orderCall int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		foods:     make(map[int64]models.Food),
		favorites: make(map[int64]models.Favorite),
	}
}

func (f *fakeBackend) GetFood(_ context.Context, id int64) (models.Food, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.foodErr != nil {
		return models.Food{}, f.foodErr
	}
	food, ok := f.foods[id]
	if !ok {
		return models.Food{}, &api.StatusError{Method: "GET", Path: "foods", Code: 404}
	}
	return food, nil
}

func (f *fakeBackend) ListFavorites(_ context.Context) ([]models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.favErr != nil {
		return nil, f.favErr
	}
	var out []models.Favorite
	for _, fav := range f.favorites {
		out = append(out, fav)
	}
	return out, nil
}

func (f *fakeBackend) AddFavorite(_ context.Context, fav models.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.favorites[fav.ID] = fav
	return nil
}

func (f *fakeBackend) RemoveFavorite(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.toggleErr != nil {
		return f.toggleErr
	}
	if _, ok := f.favorites[id]; !ok {
		return &api.StatusError{Method: "DELETE", Path: "favorites", Code: 404}
	}
	delete(f.favorites, id)
	return nil
}

func (f *fakeBackend) CreateOrder(_ context.Context, o models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderCall++
	if f.failOrder != nil && f.failOrder(f.orderCall) {
		return errors.New("backend unavailable")
	}
	f.orders = append(f.orders, o)
	return nil
}

// rendezvousBackend only answers once the calls it is waiting for are in
// flight at the same time. Calls made one after another time out instead.
type rendezvousBackend struct {
	*fakeBackend

	foodEntered chan struct{}
	favEntered  chan struct{}

	orderMu      sync.Mutex
	orderWant    int
	orderEntered int
	ordersMet    chan struct{}
	maxInFlight  int
	inFlight     int
}

const rendezvousTimeout = 2 * time.Second

var errNotConcurrent = errors.New("calls did not overlap")

func newRendezvousBackend(orders int) *rendezvousBackend {
	return &rendezvousBackend{
		fakeBackend: newFakeBackend(),
		foodEntered: make(chan struct{}),
		favEntered:  make(chan struct{}),
		orderWant:   orders,
		ordersMet:   make(chan struct{}),
	}
}

func wait(ch <-chan struct{}) error {
	select {
	case <-ch:
		return nil
	case <-time.After(rendezvousTimeout):
		return errNotConcurrent
	}
}

func (r *rendezvousBackend) GetFood(ctx context.Context, id int64) (models.Food, error) {
	close(r.foodEntered)
	if err := wait(r.favEntered); err != nil {
		return models.Food{}, err
	}
	return r.fakeBackend.GetFood(ctx, id)
}

func (r *rendezvousBackend) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	close(r.favEntered)
	if err := wait(r.foodEntered); err != nil {
		return nil, err
	}
	return r.fakeBackend.ListFavorites(ctx)
}

func (r *rendezvousBackend) CreateOrder(ctx context.Context, o models.Order) error {
	r.orderMu.Lock()
	r.orderEntered++
	r.inFlight++
	if r.inFlight > r.maxInFlight {
		r.maxInFlight = r.inFlight
	}
	if r.orderEntered == r.orderWant {
		close(r.ordersMet)
	}
	r.orderMu.Unlock()

	err := wait(r.ordersMet)

	r.orderMu.Lock()
	r.inFlight--
	r.orderMu.Unlock()
	if err != nil {
		return err
	}
	return r.fakeBackend.CreateOrder(ctx, o)
}

// --- Helpers ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedFood() models.Food {
	return models.Food{
		ID:           1,
		Name:         "Ao molho",
		Description:  "Macarrão ao molho branco",
		Price:        dec("10.00"),
		ImageURL:     "https://img/1.png",
		ThumbnailURL: "https://img/1-thumb.png",
		Category:     1,
		Extras: []models.Extra{
			{ID: 1, Name: "Bacon", Value: dec("2.00"), Quantity: 5},
			{ID: 2, Name: "Frango", Value: dec("3.50")},
		},
	}
}

// loadedState is a state as Load would produce it for seedFood.
func loadedState() FoodDetails {
	return NewFoodDetails(1).withFood(seedFood())
}
