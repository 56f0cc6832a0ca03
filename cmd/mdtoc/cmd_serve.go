package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/d-kuro/mdtoc/internal/config"
	"github.com/d-kuro/mdtoc/internal/logging"
	"github.com/d-kuro/mdtoc/internal/server"
	"github.com/d-kuro/mdtoc/pkg/version"
)

// newServeCmd represents the serve command
func newServeCmd(opts *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the table of contents tools over MCP stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the ListMarkdown
and GenerateTOC tools. The configured root and output are used as defaults and
may be overridden per request.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

// runServe starts the MCP server
func runServe(cmd *cobra.Command, opts *rootFlags) error {
	cfg, err := config.ReadWithEnv(opts.configPath, os.Getenv)
	if err != nil {
		return err
	}
	if err := cfg.ValidateLayout(); err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel)

	srv, err := server.New(&server.Options{
		Logger: logger,
		Config: cfg,
	})
	if err != nil {
		logger.Error("Failed to create server", slog.Any("error", err))
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		logger.Error("Failed to start server", slog.Any("error", err))
		return fmt.Errorf("failed to start server: %w", err)
	}

	transport := mcp.NewStdioTransport()

	logger.Info("mdtoc MCP server starting",
		slog.String("version", version.GetVersion().Version),
		slog.String("root", cfg.Root),
		slog.Int("tools_available", srv.GetRegistry().Count()))

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Serve(ctx, transport)
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Server error", slog.Any("error", err))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping server", slog.Any("error", err))
	}

	logger.Info("mdtoc MCP server stopped")
	return nil
}
