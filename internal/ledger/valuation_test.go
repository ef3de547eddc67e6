package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/baharkarakas/stocksim/internal/models"
)

func TestValue(t *testing.T) {
	cash := decimal.RequireFromString("100.50")
	holdings := []models.Holding{
		{Symbol: "AAPL", Quantity: 2},
		{Symbol: "GONE", Quantity: 5},
		{Symbol: "NFLX", Quantity: 0},
	}
	quotes := map[string]models.Quote{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc", Price: decimal.RequireFromString("150.25")},
		"NFLX": {Symbol: "NFLX", Name: "Netflix", Price: decimal.RequireFromString("400")},
	}

	p := Value(cash, holdings, quotes)

	assert.True(t, p.Partial)
	assert.True(t, p.Cash.Equal(cash))
	assert.Equal(t, "401", p.Total.String())
	if assert.Len(t, p.Positions, 2) {
		assert.Equal(t, "AAPL", p.Positions[0].Symbol)
		assert.True(t, p.Positions[0].Priced)
		assert.Equal(t, "300.5", p.Positions[0].Value.String())
		assert.Equal(t, "GONE", p.Positions[1].Symbol)
		assert.False(t, p.Positions[1].Priced)
	}
}

func TestValue_cashOnly(t *testing.T) {
	p := Value(decimal.NewFromInt(10000), nil, nil)
	assert.False(t, p.Partial)
	assert.Empty(t, p.Positions)
	assert.Equal(t, "10000", p.Total.String())
}

func TestCost(t *testing.T) {
	assert.Equal(t, "400", Cost(decimal.RequireFromString("100.00"), 4).String())
}
