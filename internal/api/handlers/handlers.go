// Package handlers holds the HTTP handlers of the HTML pages and the JSON API.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/stocksim/internal/middleware"
	"github.com/baharkarakas/stocksim/internal/services"
	"github.com/baharkarakas/stocksim/internal/web"
)

// fail renders a user error as a 400 apology and anything else as a 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	loggedIn := middleware.LoggedIn(r.Context())
	if services.IsUserError(err) {
		web.Apology(w, http.StatusBadRequest, err.Error(), loggedIn)
		return
	}
	slog.ErrorContext(r.Context(), "request failed",
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFrom(r.Context()),
		"err", err,
	)
	web.ApologyStatus(w, http.StatusInternalServerError, loggedIn)
}

func page(r *http.Request, title string, data any) web.Page {
	return web.Page{Title: title, LoggedIn: middleware.LoggedIn(r.Context()), Data: data}
}

func userID(r *http.Request) string { return middleware.FromCtx(r.Context()).UserID }

// NotFound and MethodNotAllowed render the apology page for router misses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	web.ApologyStatus(w, http.StatusNotFound, middleware.LoggedIn(r.Context()))
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	web.ApologyStatus(w, http.StatusMethodNotAllowed, middleware.LoggedIn(r.Context()))
}
