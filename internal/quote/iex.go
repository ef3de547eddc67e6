package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stocksim/internal/metrics"
	"github.com/baharkarakas/stocksim/internal/models"
)

// Client talks to an IEX Cloud compatible endpoint:
//
//	GET {base}/stock/{symbol}/quote?token={key}
type Client struct {
	base   string
	key    string
	client *http.Client
}

func NewClient(base, apiKey string, timeout time.Duration) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		key:    apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type iexQuote struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	LatestPrice decimal.Decimal `json:"latestPrice"`
}

func (c *Client) Lookup(ctx context.Context, symbol string) (models.Quote, error) {
	q, err := c.lookup(ctx, Normalize(symbol))
	switch {
	case err == nil:
		metrics.QuoteLookups.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrNotFound):
		metrics.QuoteLookups.WithLabelValues("not_found").Inc()
	default:
		metrics.QuoteLookups.WithLabelValues("error").Inc()
	}
	return q, err
}

func (c *Client) lookup(ctx context.Context, symbol string) (models.Quote, error) {
	if symbol == "" {
		return models.Quote{}, ErrNotFound
	}
	addr := fmt.Sprintf("%s/stock/%s/quote?token=%s", c.base, url.PathEscape(symbol), url.QueryEscape(c.key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return models.Quote{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return models.Quote{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.Quote{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return models.Quote{}, fmt.Errorf("quote %s: %s", symbol, resp.Status)
	}

	var raw iexQuote
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Quote{}, fmt.Errorf("quote %s: decode: %w", symbol, err)
	}
	if !raw.LatestPrice.IsPositive() {
		return models.Quote{}, ErrNotFound
	}
	if raw.Symbol == "" {
		raw.Symbol = symbol
	}
	return models.Quote{Symbol: Normalize(raw.Symbol), Name: raw.CompanyName, Price: raw.LatestPrice}, nil
}
