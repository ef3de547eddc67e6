package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/baharkarakas/stocksim/internal/ledger"
	"github.com/baharkarakas/stocksim/internal/metrics"
	"github.com/baharkarakas/stocksim/internal/models"
	"github.com/baharkarakas/stocksim/internal/quote"
	repo "github.com/baharkarakas/stocksim/internal/repository"
	"github.com/baharkarakas/stocksim/internal/validate"
)

// TradeService executes buys and sells. Each trade is validated and applied
// inside one ledger transaction: cash, history and the holdings projection
// change together or not at all.
type TradeService struct {
	ledger repo.Ledger
	quotes quote.Provider
	audit  *Auditor
	now    func() time.Time
}

func NewTradeService(l repo.Ledger, q quote.Provider, a *Auditor) *TradeService {
	return &TradeService{ledger: l, quotes: q, audit: a, now: time.Now}
}

// ----------------- BUY -----------------

func (s *TradeService) Buy(ctx context.Context, userID, symbol, shares string) (models.HistoryEntry, error) {
	sym := quote.Normalize(symbol)

	q, err := s.quotes.Lookup(ctx, sym)
	if err != nil {
		logLookup(ctx, sym, err)
		return s.fail("stock_not_found", ErrStockNotFound)
	}
	count, ok := validate.Shares(shares)
	if !ok {
		return s.fail("invalid_shares", ErrInvalidShares)
	}
	cost := ledger.Cost(q.Price, count)

	var entry models.HistoryEntry
	err = s.ledger.WithTx(ctx, func(tx repo.LedgerTx) error {
		u, err := tx.LockUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		if u.Cash.LessThan(cost) {
			return ErrInsufficientBalance
		}
		if err := tx.SetCash(ctx, userID, u.Cash.Sub(cost)); err != nil {
			return fmt.Errorf("debit cash: %w", err)
		}
		entry, err = tx.AppendHistory(ctx, models.HistoryEntry{
			UserID:     userID,
			Symbol:     sym,
			Quantity:   count,
			Price:      q.Price,
			ExecutedAt: s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		_, err = reconcileTx(ctx, tx, userID)
		return err
	})
	if err != nil {
		return s.failErr(err)
	}

	metrics.TradesTotal.WithLabelValues("buy").Inc()
	s.audit.Record("history", entry.ID, "buy", tradeDetails(entry))
	return entry, nil
}

// ----------------- SELL -----------------

func (s *TradeService) Sell(ctx context.Context, userID, symbol, shares string) (models.HistoryEntry, error) {
	sym := quote.Normalize(symbol)

	// The price is fetched before the transaction so no row lock is held
	// during the network call; a lookup failure is reported only after the
	// ownership checks.
	q, qerr := s.quotes.Lookup(ctx, sym)

	var entry models.HistoryEntry
	err := s.ledger.WithTx(ctx, func(tx repo.LedgerTx) error {
		u, err := tx.LockUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		holdings, err := reconcileTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		h, ok := ledger.Find(holdings, sym)
		if !ok {
			return ErrShareNotOwned
		}
		count, ok := validate.Int(shares)
		if !ok {
			return ErrInvalidShares
		}
		if count < 1 || count > h.Quantity {
			return ErrInsufficientShares
		}
		if qerr != nil {
			logLookup(ctx, sym, qerr)
			return ErrStockNotFound
		}

		proceeds := ledger.Cost(q.Price, count)
		if err := tx.SetCash(ctx, userID, u.Cash.Add(proceeds)); err != nil {
			return fmt.Errorf("credit cash: %w", err)
		}
		entry, err = tx.AppendHistory(ctx, models.HistoryEntry{
			UserID:     userID,
			Symbol:     sym,
			Quantity:   -count,
			Price:      q.Price,
			ExecutedAt: s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		h.Quantity -= count
		return tx.UpsertHoldings(ctx, []models.Holding{h})
	})
	if err != nil {
		return s.failErr(err)
	}

	metrics.TradesTotal.WithLabelValues("sell").Inc()
	s.audit.Record("history", entry.ID, "sell", tradeDetails(entry))
	return entry, nil
}

// ----------------- Helpers -----------------

// reconcileTx rebuilds the user's holdings from history and writes them back.
func reconcileTx(ctx context.Context, tx repo.LedgerTx, userID string) ([]models.Holding, error) {
	hist, err := tx.UserHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	holdings := ledger.Reconcile(hist)
	if err := tx.UpsertHoldings(ctx, holdings); err != nil {
		return nil, fmt.Errorf("save holdings: %w", err)
	}
	return holdings, nil
}

var failReasons = map[error]string{
	ErrInvalidShares:       "invalid_shares",
	ErrInsufficientBalance: "insufficient_balance",
	ErrShareNotOwned:       "not_owned",
	ErrInsufficientShares:  "insufficient_shares",
	ErrStockNotFound:       "stock_not_found",
}

func (s *TradeService) fail(reason string, err error) (models.HistoryEntry, error) {
	metrics.TradesFailed.WithLabelValues(reason).Inc()
	return models.HistoryEntry{}, err
}

func (s *TradeService) failErr(err error) (models.HistoryEntry, error) {
	for ue, reason := range failReasons {
		if errors.Is(err, ue) {
			return s.fail(reason, err)
		}
	}
	return s.fail("error", err)
}

func logLookup(ctx context.Context, symbol string, err error) {
	if errors.Is(err, quote.ErrNotFound) {
		return
	}
	slog.WarnContext(ctx, "quote lookup failed", "symbol", symbol, "err", err)
}

func tradeDetails(e models.HistoryEntry) map[string]any {
	return map[string]any{
		"user_id":  e.UserID,
		"symbol":   e.Symbol,
		"quantity": e.Quantity,
		"price":    e.Price.String(),
	}
}
