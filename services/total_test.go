package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name   string
		bacon  int
		frango int
		qty    int
		want   string
	}{
		{"item only", 0, 0, 1, "10"},
		{"one extra three times, two items", 3, 0, 2, "32"},
		{"mixed extras", 1, 2, 3, "57"}, // (10 + 2 + 7) × 3
		{"fractional value", 0, 1, 1, "13.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedState()
			for i := 0; i < tt.bacon; i++ {
				s, _ = s.IncrementExtra(1)
			}
			for i := 0; i < tt.frango; i++ {
				s, _ = s.IncrementExtra(2)
			}
			for s.Quantity < tt.qty {
				s, _ = s.IncrementItem()
			}
			got := Total(s)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Total() = %s, want %s", got, tt.want)
			}
			if !Total(s).Equal(got) {
				t.Error("Total must be idempotent")
			}
		})
	}
}

func TestTotal_ScenarioFormatted(t *testing.T) {
	s := loadedState()
	for i := 0; i < 3; i++ {
		s, _ = s.IncrementExtra(1)
	}
	s, _ = s.IncrementItem()
	if got := FormattedTotal(s); got != "R$ 32,00" {
		t.Errorf("FormattedTotal() = %q, want R$ 32,00", got)
	}
}

func TestTotal_NotLoaded(t *testing.T) {
	if got := Total(NewFoodDetails(1)); !got.IsZero() {
		t.Errorf("Total() of empty state = %s, want 0", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"10", "R$ 10,00"},
		{"19.9", "R$ 19,90"},
		{"0.005", "R$ 0,01"},
		{"1234.5", "R$ 1.234,50"},
		{"-3.2", "-R$ 3,20"},
		{"999.999", "R$ 1.000,00"},
		{"1000000", "R$ 1.000.000,00"},
		{"10000000000000000000.50", "R$ 10.000.000.000.000.000.000,50"},
		{"-92233720368547758080", "-R$ 92.233.720.368.547.758.080,00"},
	}
	for _, tt := range tests {
		if got := FormatValue(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatValue(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatter_EnglishGrouping(t *testing.T) {
	usd := Formatter{Symbol: "$", Tag: language.AmericanEnglish, DecimalSep: "."}
	if got := usd.Format(decimal.RequireFromString("1234567.891")); got != "$ 1,234,567.89" {
		t.Errorf("Format = %q, want %q", got, "$ 1,234,567.89")
	}
}
