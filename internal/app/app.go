package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kashi-backend/internal/auth"
	"github.com/heartmarshall/kashi-backend/internal/config"
	"github.com/heartmarshall/kashi-backend/internal/observe"
	"github.com/heartmarshall/kashi-backend/internal/service/user"
	"github.com/heartmarshall/kashi-backend/internal/transport/middleware"
)

// Run is the server entry point. It loads configuration, connects to the
// database, wires services and serves HTTP until ctx is cancelled, then
// shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	metrics := observe.Noop()
	var provider *observe.Provider
	if !cfg.Metrics.Disabled {
		if provider, err = observe.InitProvider(); err != nil {
			return err
		}
		if metrics, err = observe.NewMetrics(provider.MeterProvider()); err != nil {
			return err
		}
	}

	lexicon := NewLexicon(pool, logger, metrics)

	ingest, err := NewIngestion(cfg, logger)
	if err != nil {
		return err
	}
	if ingest != nil {
		ingest.Attach(lexicon.LyricsService)
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.Leeway)
	users := user.NewService(logger, lexicon.Users, verifier)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := NewRouter(RouterDeps{
		Config:    cfg,
		Logger:    logger,
		Lexicon:   lexicon,
		Users:     users,
		Ingestion: ingest,
		Metrics:   metrics,
		Limiter:   limiter,
		Version:   Version,
	})

	if provider != nil {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, provider.Handler())
		mux.Handle("/", handler)
		handler = mux
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		if provider != nil {
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics shutdown", slog.String("error", err.Error()))
			}
		}
		return nil
	})

	return g.Wait()
}
