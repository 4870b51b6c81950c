package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// number renders d as a bare JSON number, the form the backend uses for money.
func number(d decimal.Decimal) json.RawMessage {
	return json.RawMessage(d.String())
}

// Extra is an optional add-on of a food. Quantity is owned by the screen and
// starts at 0 whatever the backend sends.
type Extra struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Quantity int             `json:"quantity"`
}

func (e Extra) MarshalJSON() ([]byte, error) {
	type extra Extra
	return json.Marshal(struct {
		extra
		Value json.RawMessage `json:"value"`
	}{extra(e), number(e.Value)})
}

// Food is a menu item as returned by GET foods/{id}.
type Food struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       string          `json:"image_url"`
	ThumbnailURL   string          `json:"thumbnail_url"`
	Category       int64           `json:"category"`
	FormattedPrice string          `json:"formattedPrice,omitempty"`
	Extras         []Extra         `json:"extras,omitempty"`
}

func (f Food) MarshalJSON() ([]byte, error) {
	type food Food
	return json.Marshal(struct {
		food
		Price json.RawMessage `json:"price"`
	}{food(f), number(f.Price)})
}

// Favorite is the record stored under favorites: a Food without its extras and
// without the display-only formatted price.
type Favorite struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Category     int64           `json:"category"`
}

func (f Favorite) MarshalJSON() ([]byte, error) {
	type favorite Favorite
	return json.Marshal(struct {
		favorite
		Price json.RawMessage `json:"price"`
	}{favorite(f), number(f.Price)})
}

// FavoriteFromFood strips the transient fields of f.
func FavoriteFromFood(f Food) Favorite {
	return Favorite{
		ID:           f.ID,
		Name:         f.Name,
		Description:  f.Description,
		Price:        f.Price,
		ImageURL:     f.ImageURL,
		ThumbnailURL: f.ThumbnailURL,
		Category:     f.Category,
	}
}
