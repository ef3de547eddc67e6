package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stocksim/internal/ledger"
	"github.com/baharkarakas/stocksim/internal/models"
	"github.com/baharkarakas/stocksim/internal/quote"
	repo "github.com/baharkarakas/stocksim/internal/repository"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type PortfolioService struct {
	ledger   repo.Ledger
	holdings repo.Holdings
	history  repo.History
	quotes   quote.Provider
}

func NewPortfolioService(l repo.Ledger, h repo.Holdings, hist repo.History, q quote.Provider) *PortfolioService {
	return &PortfolioService{ledger: l, holdings: h, history: hist, quotes: q}
}

// Portfolio reconciles the user's holdings from history and values them.
// Quotes are fetched after the transaction has committed.
func (s *PortfolioService) Portfolio(ctx context.Context, userID string) (models.Portfolio, error) {
	var (
		cash     decimal.Decimal
		holdings []models.Holding
	)
	err := s.ledger.WithTx(ctx, func(tx repo.LedgerTx) error {
		u, err := tx.LockUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		cash = u.Cash
		holdings, err = reconcileTx(ctx, tx, userID)
		return err
	})
	if err != nil {
		return models.Portfolio{}, err
	}

	quotes := make(map[string]models.Quote, len(holdings))
	for _, h := range holdings {
		if h.Quantity == 0 {
			continue
		}
		q, err := s.quotes.Lookup(ctx, h.Symbol)
		if err != nil {
			slog.WarnContext(ctx, "position left unpriced", "symbol", h.Symbol, "err", err)
			continue
		}
		quotes[h.Symbol] = q
	}
	return ledger.Value(cash, holdings, quotes), nil
}

// OwnedSymbols lists the symbols the user currently holds shares of.
func (s *PortfolioService) OwnedSymbols(ctx context.Context, userID string) ([]string, error) {
	hs, err := s.holdings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, h := range hs {
		if h.Quantity > 0 {
			out = append(out, h.Symbol)
		}
	}
	return out, nil
}

// History lists the user's own trades, newest first.
func (s *PortfolioService) History(ctx context.Context, userID string, limit, offset int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.history.ListByUser(ctx, userID, limit, offset)
}
