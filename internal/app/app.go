package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/openscripture/lectern/internal/adapter/postgres"
	"github.com/openscripture/lectern/internal/adapter/postgres/userdata"
	"github.com/openscripture/lectern/internal/adapter/provider/scriptureapi"
	"github.com/openscripture/lectern/internal/auth"
	"github.com/openscripture/lectern/internal/config"
	"github.com/openscripture/lectern/internal/service/annotation"
	"github.com/openscripture/lectern/internal/service/content"
	"github.com/openscripture/lectern/internal/transport/middleware"
	"github.com/openscripture/lectern/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, connects to the database, wires the services, and serves the
// REST API until ctx is cancelled; then it shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting lectern",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("provider_dialect", cfg.Provider.Dialect),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	provider, err := scriptureapi.NewClient(cfg.Provider, logger)
	if err != nil {
		return fmt.Errorf("create provider client: %w", err)
	}

	contentSvc := content.NewService(logger, provider, content.Config{
		DefaultTranslation: cfg.Provider.DefaultTranslation,
		SearchLimit:        cfg.Provider.SearchLimit,
		SizingConcurrency:  cfg.Provider.SizingConcurrency,
	})
	annotationSvc := annotation.NewService(logger, userdata.New(pool))
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Deps{
		Logger:        logger,
		Content:       contentSvc,
		Annotations:   annotationSvc,
		Verifier:      verifier,
		DB:            pool,
		Version:       BuildVersion(),
		Limiter:       limiter,
		RatePerMinute: cfg.Server.RateLimit,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
