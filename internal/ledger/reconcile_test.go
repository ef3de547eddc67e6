package ledger

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/baharkarakas/stocksim/internal/models"
)

func entry(user, symbol string, qty int64) models.HistoryEntry {
	return models.HistoryEntry{UserID: user, Symbol: symbol, Quantity: qty, Price: decimal.NewFromInt(10)}
}

func TestReconcile(t *testing.T) {
	testTable := []struct {
		name    string
		history []models.HistoryEntry
		expect  []models.Holding
	}{
		{
			name:    "empty history",
			history: nil,
			expect:  []models.Holding{},
		},
		{
			name:    "single buy",
			history: []models.HistoryEntry{entry("u1", "AAPL", 4)},
			expect:  []models.Holding{{UserID: "u1", Symbol: "AAPL", Quantity: 4}},
		},
		{
			name: "buys and sells net out per symbol",
			history: []models.HistoryEntry{
				entry("u1", "NFLX", 3),
				entry("u1", "AAPL", 10),
				entry("u1", "AAPL", -4),
				entry("u1", "NFLX", -3),
			},
			expect: []models.Holding{
				{UserID: "u1", Symbol: "AAPL", Quantity: 6},
				{UserID: "u1", Symbol: "NFLX", Quantity: 0},
			},
		},
		{
			name: "users are kept apart",
			history: []models.HistoryEntry{
				entry("u2", "AAPL", 1),
				entry("u1", "AAPL", 2),
			},
			expect: []models.Holding{
				{UserID: "u1", Symbol: "AAPL", Quantity: 2},
				{UserID: "u2", Symbol: "AAPL", Quantity: 1},
			},
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expect, Reconcile(testCase.history))
		})
	}
}

func TestReconcile_matchesHistorySum(t *testing.T) {
	symbols := []string{"AAPL", "MSFT", "NFLX", "TSLA"}
	rnd := rand.New(rand.NewSource(42))

	var history []models.HistoryEntry
	sums := map[string]int64{}
	for i := 0; i < 500; i++ {
		s := symbols[rnd.Intn(len(symbols))]
		q := int64(rnd.Intn(21) - 10)
		history = append(history, entry("u1", s, q))
		sums[s] += q
	}

	holdings := Reconcile(history)
	assert.Len(t, holdings, len(sums))
	for _, h := range holdings {
		assert.Equal(t, sums[h.Symbol], h.Quantity, h.Symbol)
	}
}

func TestFind(t *testing.T) {
	hs := []models.Holding{{Symbol: "AAPL", Quantity: 1}}
	h, ok := Find(hs, "AAPL")
	assert.True(t, ok)
	assert.Equal(t, int64(1), h.Quantity)

	_, ok = Find(hs, "MSFT")
	assert.False(t, ok)
}
