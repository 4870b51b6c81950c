package services

import "github.com/shopspring/decimal"

// Total is price×Q + Σ(value×quantity×Q). A state without a food totals 0.
func Total(s FoodDetails) decimal.Decimal {
	if !s.Loaded {
		return decimal.Zero
	}
	q := decimal.NewFromInt(int64(s.Quantity))
	total := s.Food.Price.Mul(q)
	for _, e := range s.Extras {
		total = total.Add(e.Value.Mul(decimal.NewFromInt(int64(e.Quantity))).Mul(q))
	}
	return total
}

func FormattedTotal(s FoodDetails) string {
	return FormatValue(Total(s))
}
