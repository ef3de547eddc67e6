package services

import (
	"context"

	"github.com/baharkarakas/stocksim/internal/models"
	"github.com/baharkarakas/stocksim/internal/quote"
)

type QuoteService struct{ p quote.Provider }

func NewQuoteService(p quote.Provider) *QuoteService { return &QuoteService{p: p} }

// Quote looks a symbol up. Every provider failure is reported as
// ErrQuoteNotFound; causes other than an unknown symbol are logged.
func (s *QuoteService) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	sym := quote.Normalize(symbol)
	q, err := s.p.Lookup(ctx, sym)
	if err != nil {
		logLookup(ctx, sym, err)
		return models.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}
