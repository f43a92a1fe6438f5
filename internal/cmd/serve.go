package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/infra/httpx"
	"github.com/jcmexdev/storefront-lookup/internal/config"
	"github.com/jcmexdev/storefront-lookup/internal/coordinator"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/telemetry"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Long: `Start the HTTP gateway. It forwards customer searches and order
listings to the commerce platform and serves the combined lookup.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (overrides SERVER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if listenAddr != "" {
		cfg.Server.Addr = listenAddr
	}

	telemetry.InitLogger(cfg.Telemetry.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("failed to shut down tracer", "error", err)
		}
	}()

	commerce, rc, err := newCommerceClient(ctx, cfg)
	if err != nil {
		return err
	}

	orchestrator := coordinator.NewOrchestrator(coordinator.NewDirectForwarders(commerce))

	server := httpx.NewServer(cfg.Server, httpx.NewRouter(httpx.NewHandler(commerce, orchestrator, rc)))

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}
