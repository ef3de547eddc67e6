// Package quote looks up current share prices from an external provider.
package quote

import (
	"context"
	"errors"
	"strings"

	"github.com/baharkarakas/stocksim/internal/models"
)

var ErrNotFound = errors.New("quote not found")

type Provider interface {
	// Lookup returns the current quote for symbol. Unknown symbols yield ErrNotFound.
	Lookup(ctx context.Context, symbol string) (models.Quote, error)
}

// Normalize trims and upper-cases a ticker symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Static serves quotes from a fixed map keyed by normalized symbol.
type Static map[string]models.Quote

func (s Static) Lookup(_ context.Context, symbol string) (models.Quote, error) {
	q, ok := s[Normalize(symbol)]
	if !ok {
		return models.Quote{}, ErrNotFound
	}
	return q, nil
}
