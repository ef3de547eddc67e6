package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryEntry is one executed trade. Quantity is positive for a buy and
// negative for a sell. Entries are never updated once written.
type HistoryEntry struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Symbol     string          `json:"symbol"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	ExecutedAt time.Time       `json:"executed_at"`
}

func (e HistoryEntry) IsBuy() bool { return e.Quantity > 0 }

// Total is the signed cash movement of the entry from the user's point of view.
func (e HistoryEntry) Total() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(e.Quantity)).Neg()
}
