package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/baharkarakas/stocksim/internal/models"
)

func TestUSD(t *testing.T) {
	testTable := []struct {
		in     string
		expect string
	}{
		{in: "0", expect: "$0.00"},
		{in: "100", expect: "$100.00"},
		{in: "1234.5", expect: "$1,234.50"},
		{in: "10000.00", expect: "$10,000.00"},
		{in: "0.125", expect: "$0.13"},
	}

	for _, testCase := range testTable {
		t.Run(testCase.in, func(t *testing.T) {
			assert.Equal(t, testCase.expect, USD(decimal.RequireFromString(testCase.in)))
		})
	}
}

func TestRender_index(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, http.StatusOK, "index", Page{
		Title:    "Portfolio",
		LoggedIn: true,
		Data: models.Portfolio{
			Cash:  decimal.NewFromInt(100),
			Total: decimal.NewFromInt(500),
			Positions: []models.Position{
				{Symbol: "AAPL", Name: "Apple Inc.", Quantity: 4, Price: decimal.NewFromInt(100), Value: decimal.NewFromInt(400), Priced: true},
				{Symbol: "GONE", Quantity: 1},
			},
			Partial: true,
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "Apple Inc.")
	assert.Contains(t, body, "$400.00")
	assert.Contains(t, body, "$500.00")
	assert.Contains(t, body, "unpriced")
	assert.Contains(t, body, "total is partial")
	assert.Contains(t, body, `href="/logout"`)
}

func TestApology(t *testing.T) {
	rec := httptest.NewRecorder()
	Apology(rec, http.StatusBadRequest, "must own <share>", false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must own &lt;share&gt;")
	assert.Contains(t, rec.Body.String(), `href="/login"`)
}

func TestRender_unknownTemplate(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, http.StatusOK, "missing", Page{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
