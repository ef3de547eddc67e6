package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/stocksim/internal/api"
	"github.com/baharkarakas/stocksim/internal/auth"
	"github.com/baharkarakas/stocksim/internal/config"
	"github.com/baharkarakas/stocksim/internal/db"
	"github.com/baharkarakas/stocksim/internal/logger"
	"github.com/baharkarakas/stocksim/internal/metrics"
	"github.com/baharkarakas/stocksim/internal/middleware"
	"github.com/baharkarakas/stocksim/internal/quote"
	"github.com/baharkarakas/stocksim/internal/repository"
	"github.com/baharkarakas/stocksim/internal/repository/memory"
	"github.com/baharkarakas/stocksim/internal/repository/postgres"
	"github.com/baharkarakas/stocksim/internal/services"
	"github.com/baharkarakas/stocksim/internal/worker"
)

const quoteCacheSize = 1000

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("store", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	quotes := quote.NewCached(
		quote.NewClient(cfg.QuoteURL, cfg.APIKey, cfg.QuoteTimeout),
		quote.NewCache(cfg.RedisAddr, quoteCacheSize, cfg.QuoteCacheTTL),
		cfg.QuoteCacheTTL,
	)

	wp := worker.NewPool(cfg.Workers)
	defer wp.Stop()
	auditor := services.NewAuditor(repos.AuditLogs, wp)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:       cfg,
		Auth:      middleware.NewAuthMiddleware(auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL), cfg.Env),
		Users:     services.NewUserService(repos.Users, cfg.StartingCash, auditor),
		Trades:    services.NewTradeService(repos.Ledger, quotes, auditor),
		Portfolio: services.NewPortfolioService(repos.Ledger, repos.Holdings, repos.History, quotes),
		Quotes:    services.NewQuoteService(quotes),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

// openStore returns the configured repositories and a func releasing them.
func openStore(ctx context.Context, cfg config.Config) (repository.Repositories, func(), error) {
	if cfg.Store == "memory" {
		return memory.New().Repositories(), func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return repository.Repositories{}, nil, err
		}
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}
