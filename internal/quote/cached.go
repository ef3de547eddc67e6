package quote

import (
	"context"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stocksim/internal/models"
)

// NewCache builds a quote cache. An in-process TinyLFU always sits in front;
// Redis is shared between instances when redisAddr is set.
func NewCache(redisAddr string, size int, ttl time.Duration) *cache.Cache {
	opts := &cache.Options{LocalCache: cache.NewTinyLFU(size, ttl)}
	if redisAddr != "" {
		opts.Redis = redis.NewClient(&redis.Options{Addr: redisAddr})
	}
	return cache.New(opts)
}

// Cached wraps a Provider and keeps successful lookups for ttl.
// Failures are never cached.
type Cached struct {
	next  Provider
	cache *cache.Cache
	ttl   time.Duration
}

func NewCached(next Provider, c *cache.Cache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl}
}

type cachedQuote struct {
	Symbol string `msgpack:"s"`
	Name   string `msgpack:"n"`
	Price  string `msgpack:"p"`
}

func (c *Cached) Lookup(ctx context.Context, symbol string) (models.Quote, error) {
	symbol = Normalize(symbol)
	if symbol == "" {
		return models.Quote{}, ErrNotFound
	}

	var cq cachedQuote
	err := c.cache.Once(&cache.Item{
		Ctx:   ctx,
		Key:   "quote:" + symbol,
		Value: &cq,
		TTL:   c.ttl,
		Do: func(*cache.Item) (interface{}, error) {
			q, err := c.next.Lookup(ctx, symbol)
			if err != nil {
				return nil, err
			}
			return cachedQuote{Symbol: q.Symbol, Name: q.Name, Price: q.Price.String()}, nil
		},
	})
	if err != nil {
		return models.Quote{}, err
	}
	price, err := decimal.NewFromString(cq.Price)
	if err != nil {
		return models.Quote{}, err
	}
	return models.Quote{Symbol: cq.Symbol, Name: cq.Name, Price: price}, nil
}
