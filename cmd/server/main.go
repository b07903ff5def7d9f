package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/splitease/splitease/internal/auth"
	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/config"
	"github.com/splitease/splitease/internal/metrics"
	"github.com/splitease/splitease/internal/server"
	"github.com/splitease/splitease/internal/service"
	"github.com/splitease/splitease/internal/storage/sqlite"
	"github.com/splitease/splitease/internal/validation"
	"github.com/splitease/splitease/internal/watch"
	"github.com/splitease/splitease/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath, watch.NewHub())
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	validate, err := validation.New()
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}

	m := metrics.New()
	engine := calculator.NewEngine(calculator.MultiObserver(
		calculator.LogObserver(logging.Component(logger, "calculator")),
		m,
	))
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration)
	balances := service.NewBalanceService(store, engine, validate, m, cfg.RecomputeDebounce, cfg.WatchIdleTimeout)

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	logger.Info("Serving static files", "path", staticDir)

	router := server.NewRouter(server.Services{
		Auth: service.NewAuthService(
			auth.NewPasswordAuthenticator(store, 0), tokens, store, validate,
			logging.Component(logger, "auth"),
		),
		Expense: service.NewExpenseService(store, validate),
		Group:   service.NewGroupService(store, validate),
		Friend:  service.NewFriendService(store, validate),
		Balance: balances,
	}, server.Options{
		Tokens:     tokens,
		Metrics:    m,
		Logger:     logging.Component(logger, "rpc"),
		StaticPath: staticDir,
		Ping:       store.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return balances.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
