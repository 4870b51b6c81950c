package services

import (
	"errors"

	"food-details/models"
)

var (
	// ErrInvalidFoodID is returned by Load for ids <= 0.
	ErrInvalidFoodID = errors.New("invalid food id")
	// ErrNoFood is returned by actions that need a loaded food.
	ErrNoFood = errors.New("food not loaded")
)

// Failure records the last action that failed so the card can offer a retry.
type Failure struct {
	Action string `json:"action"` // one of ActionReload, ActionFavorite, ActionOrder
	Detail string `json:"detail"`
}

// FoodDetails is the whole state of one Food Details screen.
//
// Treat it as a value: every mutation returns a new FoodDetails with its own
// copy of Extras, so a state handed to a renderer or a session store is never
// changed underneath it.
type FoodDetails struct {
	FoodID     int64          `json:"food_id"`
	Loaded     bool           `json:"loaded"`
	Food       models.Food    `json:"food"`
	Extras     []models.Extra `json:"extras"`
	IsFavorite bool           `json:"is_favorite"`
	Quantity   int            `json:"quantity"`
	Failure    *Failure       `json:"failure,omitempty"`
}

// NewFoodDetails returns the initial state shown before anything is loaded.
func NewFoodDetails(foodID int64) FoodDetails {
	return FoodDetails{FoodID: foodID, Quantity: 1}
}

func (s FoodDetails) clone() FoodDetails {
	out := s
	if s.Extras != nil {
		out.Extras = make([]models.Extra, len(s.Extras))
		copy(out.Extras, s.Extras)
	}
	if s.Failure != nil {
		f := *s.Failure
		out.Failure = &f
	}
	return out
}

// withFood folds a fetched food into the state: formatted price is derived and
// the extras move into s.Extras with quantity reset to 0.
func (s FoodDetails) withFood(f models.Food) FoodDetails {
	out := s.clone()
	extras := make([]models.Extra, len(f.Extras))
	for i, e := range f.Extras {
		extras[i] = models.Extra{ID: e.ID, Name: e.Name, Value: e.Value, Quantity: 0}
	}
	f.FormattedPrice = FormatValue(f.Price)
	f.Extras = nil
	out.Food = f
	out.Extras = extras
	out.Loaded = true
	return out
}

// WithFailure returns s marking action as failed; a nil err clears it.
func (s FoodDetails) WithFailure(action string, err error) FoodDetails {
	out := s.clone()
	if err == nil {
		out.Failure = nil
		return out
	}
	out.Failure = &Failure{Action: action, Detail: err.Error()}
	return out
}

func (s FoodDetails) extraIndex(id int64) int {
	for i := range s.Extras {
		if s.Extras[i].ID == id {
			return i
		}
	}
	return -1
}

// IncrementExtra adds one unit of extra id. An unknown id is a no-op and
// reports changed=false.
func (s FoodDetails) IncrementExtra(id int64) (FoodDetails, bool) {
	i := s.extraIndex(id)
	if i < 0 {
		return s, false
	}
	out := s.clone()
	out.Extras[i].Quantity++
	return out, true
}

// DecrementExtra removes one unit of extra id. Quantity floors at 0; at the
// floor or for an unknown id it is a no-op.
func (s FoodDetails) DecrementExtra(id int64) (FoodDetails, bool) {
	i := s.extraIndex(id)
	if i < 0 || s.Extras[i].Quantity <= 0 {
		return s, false
	}
	out := s.clone()
	out.Extras[i].Quantity--
	return out, true
}

func (s FoodDetails) IncrementItem() (FoodDetails, bool) {
	out := s.clone()
	out.Quantity++
	return out, true
}

// DecrementItem floors the item quantity at 1.
func (s FoodDetails) DecrementItem() (FoodDetails, bool) {
	if s.Quantity <= 1 {
		return s, false
	}
	out := s.clone()
	out.Quantity--
	return out, true
}

// SelectedExtras returns a copy of the extras with quantity > 0.
func (s FoodDetails) SelectedExtras() []models.Extra {
	out := []models.Extra{}
	for _, e := range s.Extras {
		if e.Quantity > 0 {
			out = append(out, e)
		}
	}
	return out
}
