package handlers

import (
	"net/http"

	"github.com/baharkarakas/stocksim/internal/services"
	"github.com/baharkarakas/stocksim/internal/validate"
	"github.com/baharkarakas/stocksim/internal/web"
)

type PortfolioHandler struct {
	Portfolio *services.PortfolioService
}

func NewPortfolioHandler(ps *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{Portfolio: ps}
}

func (h *PortfolioHandler) Index(w http.ResponseWriter, r *http.Request) {
	p, err := h.Portfolio.Portfolio(r.Context(), userID(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	web.Render(w, http.StatusOK, "index", page(r, "Portfolio", p))
}

func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := validate.IntParam(q.Get("limit"), services.DefaultHistoryLimit, 1, services.MaxHistoryLimit)
	offset := validate.IntParam(q.Get("offset"), 0, 0, 1<<31-1)

	entries, err := h.Portfolio.History(r.Context(), userID(r), limit, offset)
	if err != nil {
		fail(w, r, err)
		return
	}
	web.Render(w, http.StatusOK, "history", page(r, "History", entries))
}
