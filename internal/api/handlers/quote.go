package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/stocksim/internal/api/httpx"
	"github.com/baharkarakas/stocksim/internal/services"
	"github.com/baharkarakas/stocksim/internal/web"
)

type QuoteHandler struct {
	Quotes *services.QuoteService
}

func NewQuoteHandler(qs *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{Quotes: qs}
}

func (h *QuoteHandler) Form(w http.ResponseWriter, r *http.Request) {
	web.Render(w, http.StatusOK, "quote", page(r, "Quote", nil))
}

func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q, err := h.Quotes.Quote(r.Context(), r.PostFormValue("symbol"))
	if err != nil {
		fail(w, r, err)
		return
	}
	web.Render(w, http.StatusOK, "quoted", page(r, "Quoted", q))
}

// QuoteJSON serves GET /api/v1/quote/{symbol}.
func (h *QuoteHandler) QuoteJSON(w http.ResponseWriter, r *http.Request) {
	q, err := h.Quotes.Quote(r.Context(), chi.URLParam(r, "symbol"))
	if errors.Is(err, services.ErrQuoteNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
		return
	}
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, q)
}
