package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/okian/statusboard/internal/adapters/http/api"
	"github.com/okian/statusboard/internal/adapters/http/swagger"
	service "github.com/okian/statusboard/internal/app"
	"github.com/okian/statusboard/pkg/logger"
	"github.com/spf13/cobra"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func newServeCommand(a *app) *cobra.Command {
	var (
		addr    string
		noWatch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read API over HTTP",
		Long: `Load the data directory, watch it for changes and serve the read API,
the API reference at /api-docs and Prometheus metrics at /metrics.

The server listens on loopback by default and shuts down gracefully on
SIGINT or SIGTERM.

Examples:
  statusboard serve
  statusboard serve --addr 0.0.0.0:9080 --data-dir ./runs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			lis, err := net.Listen("tcp", a.cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", a.cfg.Addr, err)
			}
			return a.serve(ctx, lis, a.cfg.WatchEnabled && !noWatch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload when data files change")
	return cmd
}

// serve runs the HTTP server on lis until ctx is done.
func (a *app) serve(ctx context.Context, lis net.Listener, watch bool) error {
	log := logger.Get().Named("server")

	svc, err := a.newService(watch)
	if err != nil {
		_ = lis.Close()
		return err
	}
	if err := svc.Start(ctx); err != nil {
		_ = lis.Close()
		return err
	}
	defer svc.Stop()

	srv := &http.Server{
		Handler:           newHandler(ctx, svc, a.cfg.AllowedOrigins),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info(context.Background(), "server stopped")
	return nil
}

// newHandler mounts every route and wraps the mux with compression and,
// when origins are configured, CORS.
func newHandler(ctx context.Context, svc *service.Service, origins []string) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)

	var h http.Handler = mux
	if len(origins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Accept", "Accept-Encoding", "Content-Type", "X-Requested-With"}),
		)(h)
	}
	return handlers.CompressHandler(h)
}
