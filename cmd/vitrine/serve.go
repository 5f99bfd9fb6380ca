package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnwards/vitrine/internal/api"
	"github.com/johnwards/vitrine/internal/api/admin"
	"github.com/johnwards/vitrine/internal/api/assets"
	"github.com/johnwards/vitrine/internal/api/products"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(cmd)
			if v, _ := cmd.Flags().GetString("addr"); v != "" {
				cfg.Addr = v
			}
			a, err := bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			return serve(cmd.Context(), a)
		},
	}
	addDBFlags(cmd)
	cmd.Flags().String("addr", "", "listen address (overrides VITRINE_ADDR)")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	zap.ReplaceGlobals(a.logger)

	catalog := products.NewHandler(a.store.Catalog, a.resolver, a.logger, a.cfg.FetchTimeout)
	ops := admin.NewHandler(a.store.Catalog, a.resolver, a.logger)

	handler := api.NewRouter(api.RouterConfig{
		Logger:     a.logger,
		Metrics:    api.NewMetrics(),
		AdminToken: a.cfg.AdminToken,
		DB:         a.db,
	}, catalog.Routes, ops.Routes, assets.Routes(nil))

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting vitrine server", zap.String("addr", a.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
