package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/stocksim/internal/api/handlers"
	"github.com/baharkarakas/stocksim/internal/config"
	"github.com/baharkarakas/stocksim/internal/metrics"
	"github.com/baharkarakas/stocksim/internal/middleware"
	"github.com/baharkarakas/stocksim/internal/services"
)

type RouterDeps struct {
	Cfg       config.Config
	Auth      *middleware.AuthMiddleware
	Users     *services.UserService
	Trades    *services.TradeService
	Portfolio *services.PortfolioService
	Quotes    *services.QuoteService
}

func NewRouter(d RouterDeps) http.Handler {
	authH := handlers.NewAuthHandler(d.Users, d.Auth)
	portfolioH := handlers.NewPortfolioHandler(d.Portfolio)
	tradeH := handlers.NewTradeHandler(d.Trades, d.Portfolio)
	quoteH := handlers.NewQuoteHandler(d.Quotes)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.HTTPMetrics, middleware.Recover, middleware.NoCache)
	r.Use(d.Auth.Identify, middleware.RateLimit(d.Cfg.RateRPS))
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// ---------- session ----------
	r.Get("/login", authH.LoginForm)
	r.Post("/login", authH.Login)
	r.Get("/logout", authH.Logout)
	r.Get("/register", authH.RegisterForm)
	r.Post("/register", authH.Register)

	// ---------- pages behind the session gate ----------
	r.Group(func(r chi.Router) {
		r.Use(d.Auth.RequireLogin)

		r.Get("/", portfolioH.Index)
		r.Get("/history", portfolioH.History)

		r.Get("/buy", tradeH.BuyForm)
		r.Post("/buy", tradeH.Buy)
		r.Get("/sell", tradeH.SellForm)
		r.Post("/sell", tradeH.Sell)

		r.Get("/quote", quoteH.Form)
		r.Post("/quote", quoteH.Quote)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:" + d.Cfg.HTTPPort},
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
		}))
		r.Use(d.Auth.RequireLoginJSON)

		r.Get("/quote/{symbol}", quoteH.QuoteJSON)
	})

	return r
}
