package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stocksim/internal/models"
)

// Value builds a portfolio from cash, holdings and whatever quotes could be
// fetched. Zero-quantity holdings are dropped. A non-zero holding without a
// quote is kept with Priced=false, contributes nothing to Total and marks the
// portfolio Partial.
func Value(cash decimal.Decimal, holdings []models.Holding, quotes map[string]models.Quote) models.Portfolio {
	p := models.Portfolio{Cash: cash, Total: cash, Positions: []models.Position{}}
	for _, h := range holdings {
		if h.Quantity == 0 {
			continue
		}
		pos := models.Position{Symbol: h.Symbol, Quantity: h.Quantity}
		if q, ok := quotes[h.Symbol]; ok {
			pos.Name = q.Name
			pos.Price = q.Price
			pos.Value = q.Price.Mul(decimal.NewFromInt(h.Quantity))
			pos.Priced = true
			p.Total = p.Total.Add(pos.Value)
		} else {
			p.Partial = true
		}
		p.Positions = append(p.Positions, pos)
	}
	return p
}

// Cost is the cash needed to trade count shares at price.
func Cost(price decimal.Decimal, count int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(count))
}
