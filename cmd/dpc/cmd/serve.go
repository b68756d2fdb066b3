package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MeKo-Tech/dpc/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd starts the optional HTTP+WebSocket compare server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server exposing compare/quality over REST and WebSocket",
	Long: `Start an HTTP server providing:
  POST /compare      - run a compare job, return the compare envelope as JSON
  GET  /compare/ws   - WebSocket progress stream ending with the compare envelope
  GET  /health        - health check
  GET  /metrics       - Prometheus metrics

Examples:
  dpc serve
  dpc serve --port 8080 --host 0.0.0.0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "", "server host (default: configured server.host)")
	serveCmd.Flags().IntP("port", "p", 0, "server port (default: configured server.port)")
	serveCmd.Flags().String("cors-origin", "", "CORS allowed origin (default: configured server.cors_origin)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	host := cfg.Server.Host
	if h, _ := cmd.Flags().GetString("host"); h != "" {
		host = h
	}
	port := cfg.Server.Port
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		port = p
	}
	if cors, _ := cmd.Flags().GetString("cors-origin"); cors != "" {
		cfg.Server.CORSOrigin = cors
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
	}

	srv := server.NewServer(*cfg, nil, nil)
	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	timeout := time.Duration(cfg.Server.TimeoutSec) * time.Second
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("starting server", "host", host, "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
	}

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}
	slog.Info("graceful shutdown completed")
	return nil
}
