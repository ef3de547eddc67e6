// Package ledger holds the pure bookkeeping rules of the simulator: deriving
// holdings from trade history and valuing them against quoted prices.
package ledger

import (
	"sort"

	"github.com/baharkarakas/stocksim/internal/models"
)

// Reconcile folds history into one holding per (user, symbol), each carrying
// the signed sum of the quantities traded for that symbol. The result is
// sorted by symbol so callers can write it back deterministically.
func Reconcile(history []models.HistoryEntry) []models.Holding {
	type key struct{ user, symbol string }
	sums := make(map[key]int64)
	for _, e := range history {
		sums[key{e.UserID, e.Symbol}] += e.Quantity
	}

	out := make([]models.Holding, 0, len(sums))
	for k, q := range sums {
		out = append(out, models.Holding{UserID: k.user, Symbol: k.symbol, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// Find returns the holding for symbol, if any.
func Find(holdings []models.Holding, symbol string) (models.Holding, bool) {
	for _, h := range holdings {
		if h.Symbol == symbol {
			return h, true
		}
	}
	return models.Holding{}, false
}
