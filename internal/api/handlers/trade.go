package handlers

import (
	"net/http"

	"github.com/baharkarakas/stocksim/internal/services"
	"github.com/baharkarakas/stocksim/internal/web"
)

type TradeHandler struct {
	Trades    *services.TradeService
	Portfolio *services.PortfolioService
}

func NewTradeHandler(ts *services.TradeService, ps *services.PortfolioService) *TradeHandler {
	return &TradeHandler{Trades: ts, Portfolio: ps}
}

func (h *TradeHandler) BuyForm(w http.ResponseWriter, r *http.Request) {
	web.Render(w, http.StatusOK, "buy", page(r, "Buy", nil))
}

func (h *TradeHandler) Buy(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Trades.Buy(r.Context(), userID(r), r.PostFormValue("symbol"), r.PostFormValue("shares")); err != nil {
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SellForm offers the symbols the user currently owns.
func (h *TradeHandler) SellForm(w http.ResponseWriter, r *http.Request) {
	owned, err := h.Portfolio.OwnedSymbols(r.Context(), userID(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	web.Render(w, http.StatusOK, "sell", page(r, "Sell", owned))
}

func (h *TradeHandler) Sell(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Trades.Sell(r.Context(), userID(r), r.PostFormValue("symbol"), r.PostFormValue("shares")); err != nil {
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
