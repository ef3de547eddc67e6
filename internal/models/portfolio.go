package models

import "github.com/shopspring/decimal"

type Position struct {
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name,omitempty"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Value    decimal.Decimal `json:"value"`
	Priced   bool            `json:"priced"`
}

type Portfolio struct {
	Cash      decimal.Decimal `json:"cash"`
	Positions []Position      `json:"positions"`
	Total     decimal.Decimal `json:"total"`
	// Partial is set when at least one position could not be priced and
	// was left out of Total.
	Partial bool `json:"partial"`
}
