package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/safeparse-mcp/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables:
	// - SAFEPARSE_FORMATTING: diagnostic or privacy-preserving (default: diagnostic)
	// - SCHEMA_DIR / SCHEMA_WATCH: named schemas served by the tools
	// - METRICS_ADDR: Prometheus listener (default: disabled)
	// - LOG_LEVEL, LOG_FORMAT, LOG_FILE
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer()
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting safeparse MCP server on stdio")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
