package services

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/stocksim/internal/models"
	"github.com/baharkarakas/stocksim/internal/quote"
	"github.com/baharkarakas/stocksim/internal/repository/memory"
)

var testQuotes = quote.Static{
	"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", Price: decimal.RequireFromString("100.00")},
	"NFLX": {Symbol: "NFLX", Name: "Netflix Inc.", Price: decimal.RequireFromString("12.50")},
}

type fixture struct {
	store  *memory.Store
	trades *TradeService
	userID string
}

func newFixture(t *testing.T, cash string, q quote.Provider) fixture {
	t.Helper()
	store := memory.New()
	u, err := store.Create(context.Background(), "alice", "hash", decimal.RequireFromString(cash))
	require.NoError(t, err)
	return fixture{store: store, trades: NewTradeService(store, q, nil), userID: u.ID}
}

func (f fixture) cash(t *testing.T) decimal.Decimal {
	t.Helper()
	u, err := f.store.GetByID(context.Background(), f.userID)
	require.NoError(t, err)
	return u.Cash
}

func (f fixture) history(t *testing.T) []models.HistoryEntry {
	t.Helper()
	h, err := f.store.ListByUser(context.Background(), f.userID, 100, 0)
	require.NoError(t, err)
	return h
}

func TestBuy_validation(t *testing.T) {
	testTable := []struct {
		name   string
		symbol string
		shares string
		expect error
	}{
		{name: "unknown symbol", symbol: "ZZZZ", shares: "1", expect: ErrStockNotFound},
		{name: "unknown symbol wins over bad count", symbol: "ZZZZ", shares: "x", expect: ErrStockNotFound},
		{name: "empty count", symbol: "AAPL", shares: "", expect: ErrInvalidShares},
		{name: "zero", symbol: "AAPL", shares: "0", expect: ErrInvalidShares},
		{name: "negative", symbol: "AAPL", shares: "-3", expect: ErrInvalidShares},
		{name: "fraction", symbol: "AAPL", shares: "1.5", expect: ErrInvalidShares},
		{name: "too expensive", symbol: "AAPL", shares: "6", expect: ErrInsufficientBalance},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t, "500.00", testQuotes)
			_, err := f.trades.Buy(context.Background(), f.userID, testCase.symbol, testCase.shares)
			assert.ErrorIs(t, err, testCase.expect)
			assert.True(t, IsUserError(err))
			assert.True(t, f.cash(t).Equal(decimal.RequireFromString("500.00")))
			assert.Empty(t, f.history(t))
		})
	}
}

func TestBuy_debitsCashAndRecordsEntry(t *testing.T) {
	f := newFixture(t, "500.00", testQuotes)
	ctx := context.Background()

	_, err := f.trades.Buy(ctx, f.userID, "AAPL", "10")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	e, err := f.trades.Buy(ctx, f.userID, " aapl ", "4")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", e.Symbol)
	assert.Equal(t, int64(4), e.Quantity)
	assert.True(t, e.Price.Equal(decimal.RequireFromString("100.00")))

	assert.Equal(t, "100", f.cash(t).String())
	hist := f.history(t)
	require.Len(t, hist, 1)
	assert.Equal(t, int64(4), hist[0].Quantity)

	hs, err := f.store.Holdings().ListByUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, []models.Holding{{UserID: f.userID, Symbol: "AAPL", Quantity: 4}}, hs)
}

func TestBuy_exactBalance(t *testing.T) {
	f := newFixture(t, "500.00", testQuotes)
	_, err := f.trades.Buy(context.Background(), f.userID, "AAPL", "5")
	require.NoError(t, err)
	assert.True(t, f.cash(t).IsZero())
}

func TestBuy_concurrentNeverOverdraws(t *testing.T) {
	f := newFixture(t, "1000.00", testQuotes)
	ctx := context.Background()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.trades.Buy(ctx, f.userID, "AAPL", "1"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, ErrInsufficientBalance)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.True(t, f.cash(t).IsZero())
	assert.False(t, f.cash(t).IsNegative())
}

func TestSell_validation(t *testing.T) {
	testTable := []struct {
		name   string
		symbol string
		shares string
		expect error
	}{
		{name: "not owned", symbol: "NFLX", shares: "1", expect: ErrShareNotOwned},
		{name: "unknown and not owned", symbol: "ZZZZ", shares: "1", expect: ErrShareNotOwned},
		{name: "not a number", symbol: "AAPL", shares: "two", expect: ErrInvalidShares},
		{name: "zero", symbol: "AAPL", shares: "0", expect: ErrInsufficientShares},
		{name: "negative", symbol: "AAPL", shares: "-1", expect: ErrInsufficientShares},
		{name: "oversell", symbol: "AAPL", shares: "5", expect: ErrInsufficientShares},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t, "500.00", testQuotes)
			ctx := context.Background()
			_, err := f.trades.Buy(ctx, f.userID, "AAPL", "4")
			require.NoError(t, err)

			_, err = f.trades.Sell(ctx, f.userID, testCase.symbol, testCase.shares)
			assert.ErrorIs(t, err, testCase.expect)
			assert.Equal(t, "100", f.cash(t).String())
			assert.Len(t, f.history(t), 1)
		})
	}
}

func TestSell_wholeHolding(t *testing.T) {
	f := newFixture(t, "500.00", testQuotes)
	ctx := context.Background()
	_, err := f.trades.Buy(ctx, f.userID, "AAPL", "4")
	require.NoError(t, err)

	e, err := f.trades.Sell(ctx, f.userID, "aapl", "4")
	require.NoError(t, err)
	assert.Equal(t, int64(-4), e.Quantity)

	assert.Equal(t, "500", f.cash(t).String())
	hs, err := f.store.Holdings().ListByUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, []models.Holding{{UserID: f.userID, Symbol: "AAPL", Quantity: 0}}, hs)

	_, err = f.trades.Sell(ctx, f.userID, "AAPL", "1")
	assert.ErrorIs(t, err, ErrInsufficientShares)
}

func TestSell_unpricedAfterOwnershipChecks(t *testing.T) {
	f := newFixture(t, "500.00", testQuotes)
	ctx := context.Background()
	_, err := f.trades.Buy(ctx, f.userID, "NFLX", "2")
	require.NoError(t, err)

	// the provider loses the symbol after the purchase
	f.trades.quotes = quote.Static{}

	_, err = f.trades.Sell(ctx, f.userID, "NFLX", "3")
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = f.trades.Sell(ctx, f.userID, "NFLX", "1")
	assert.ErrorIs(t, err, ErrStockNotFound)
}

func TestTrades_auditRecorded(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	u, err := store.Create(ctx, "erin", "hash", decimal.NewFromInt(1000))
	require.NoError(t, err)

	svc := NewTradeService(store, testQuotes, NewAuditor(store.AuditLog(), nil))
	_, err = svc.Buy(ctx, u.ID, "AAPL", "2")
	require.NoError(t, err)
	_, err = svc.Sell(ctx, u.ID, "AAPL", "1")
	require.NoError(t, err)

	logs := store.AuditEntries()
	require.Len(t, logs, 2)
	assert.Equal(t, "buy", logs[0].Action)
	assert.Equal(t, "sell", logs[1].Action)
	assert.Equal(t, "AAPL", logs[1].Details["symbol"])
}
