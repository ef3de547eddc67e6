package quote

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/stocksim/internal/models"
)

type countingProvider struct {
	calls int32
	next  Provider
}

func (p *countingProvider) Lookup(ctx context.Context, symbol string) (models.Quote, error) {
	atomic.AddInt32(&p.calls, 1)
	return p.next.Lookup(ctx, symbol)
}

func TestCached_Lookup(t *testing.T) {
	inner := &countingProvider{next: Static{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc", Price: decimal.RequireFromString("150.25")},
	}}
	c := NewCached(inner, NewCache("", 100, time.Minute), time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		q, err := c.Lookup(ctx, "aapl")
		require.NoError(t, err)
		assert.Equal(t, "Apple Inc", q.Name)
		assert.Equal(t, "150.25", q.Price.String())
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.calls))
}

func TestCached_doesNotCacheFailures(t *testing.T) {
	inner := &countingProvider{next: Static{}}
	c := NewCached(inner, NewCache("", 100, time.Minute), time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.Lookup(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&inner.calls))

	_, err := c.Lookup(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(2), atomic.LoadInt32(&inner.calls))
}

func TestStatic_Lookup(t *testing.T) {
	s := Static{"MSFT": {Symbol: "MSFT", Price: decimal.NewFromInt(1)}}
	q, err := s.Lookup(context.Background(), " msft")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", q.Symbol)

	_, err = s.Lookup(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNotFound)
}
