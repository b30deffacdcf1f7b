package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/bazar/internal/httpserver"
	"github.com/Skotchmaster/bazar/internal/metrics"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	a, err := newApp(openCtx)
	cancel()
	if err != nil {
		return err
	}

	m := metrics.New("bazar")
	e := httpserver.New(a.logger, m)
	httpserver.Register(e, &httpserver.Deps{
		Tokens:         a.tokens,
		Users:          a.store,
		Ready:          a.store.Ping,
		Metrics:        m,
		TokenHandler:   &httpserver.TokenHTTP{Issuer: a.tokens},
		UserHandler:    &httpserver.UserHTTP{Svc: a.users},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: a.catalog},
		OrderHandler:   &httpserver.OrderHTTP{Svc: a.orders},
		PaymentHandler: &httpserver.PaymentHTTP{Svc: a.payments},
	})

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		a.close(context.Background())
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown_error", "error", err)
	}
	a.close(shutdownCtx)
	a.logger.Info("server_stopped")
	return nil
}
