package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Order is one order line sent to POST orders. ID is always 0 on submit;
// the backend assigns it.
type Order struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     int64           `json:"category"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Extras       []Extra         `json:"extras"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		Price json.RawMessage `json:"price"`
	}{order(o), number(o.Price)})
}
