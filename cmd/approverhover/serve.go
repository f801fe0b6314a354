package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httphandler "github.com/ericfisherdev/approverhover/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/approverhover/internal/adapter/driving/web"
	"github.com/ericfisherdev/approverhover/internal/config"
)

func newServeCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local hover daemon editors query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from APPROVERHOVER_LISTEN_ADDR or 127.0.0.1:7878)")
	return cmd
}

// tokenChecker reports which account the configured token belongs to.
type tokenChecker interface {
	AuthenticatedUser(ctx context.Context) (string, error)
}

// newHandler builds the full HTTP handler and returns the GitHub client it
// resolves through. It refuses to register anything when no token is configured.
func newHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, tokenChecker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	resolveSvc, ghClient, err := newResolveService(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	workspace, err := filepath.Abs(cfg.Workspace)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(resolveSvc, workspace, logger))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(resolveSvc, workspace, logger))

	return httphandler.ApplyMiddleware(mux, logger), ghClient, nil
}

func serve(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	if parent == nil {
		parent = context.Background()
	}

	handler, checker, err := newHandler(cfg, logger)
	if err != nil {
		return err
	}

	// Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go checkToken(ctx, checker, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// checkToken reports which account the token authenticates as. A rejected
// token only produces a warning; hovers then degrade to their not-found
// messages.
func checkToken(ctx context.Context, checker tokenChecker, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	login, err := checker.AuthenticatedUser(ctx)
	if err != nil {
		logger.Warn("github token check failed", "error", err)
		return
	}
	logger.Info("github token valid", "login", login)
}
