// Package server implements the MCP server exposing the table of contents tools.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/mdtoc/internal/collections"
	"github.com/d-kuro/mdtoc/internal/config"
	"github.com/d-kuro/mdtoc/internal/logging"
	"github.com/d-kuro/mdtoc/internal/security"
	"github.com/d-kuro/mdtoc/internal/tools"
	"github.com/d-kuro/mdtoc/internal/tools/markdown"
	"github.com/d-kuro/mdtoc/pkg/version"
)

// Server represents the mdtoc MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *tools.Registry
	logger    *logging.Logger
	validator security.Validator
	config    *config.Config
}

// Options configures the server instance.
type Options struct {
	Logger    *logging.Logger
	Validator security.Validator
	// Config supplies the defaults for requests that omit root or output.
	Config *config.Config
}

// New creates a new mdtoc MCP server with the given options.
func New(opts *Options) (*Server, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("server config is required")
	}

	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(opts.Config.LogLevel)
	}

	if opts.Validator == nil {
		validator, err := newValidator(opts.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to create path validator: %w", err)
		}
		opts.Validator = validator
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "mdtoc",
		Version: version.GetVersion().Version,
	}, nil)

	server := &Server{
		mcpServer: mcpServer,
		registry:  tools.NewRegistry(),
		logger:    opts.Logger,
		validator: opts.Validator,
		config:    opts.Config,
	}

	if err := server.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return server, nil
}

// newValidator builds the path validator from the allow and block lists in
// cfg. Relative entries are taken from the working directory.
func newValidator(cfg *config.Config) (*security.DefaultValidator, error) {
	allowed, err := absolutePaths(cfg.AllowedPaths)
	if err != nil {
		return nil, err
	}
	blocked, err := absolutePaths(cfg.BlockedPaths)
	if err != nil {
		return nil, err
	}

	return security.NewDefaultValidator().
		WithAllowedPaths(allowed).
		WithBlockedPaths(blocked), nil
}

func absolutePaths(paths []string) ([]string, error) {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		a, err := security.Absolute(p)
		if err != nil {
			return nil, err
		}
		abs = append(abs, a)
	}
	return abs, nil
}

// Start validates the registry before serving.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting mdtoc MCP server",
		slog.String("version", version.GetVersion().Version),
		slog.Int("tools", s.registry.Count()),
	)

	if err := s.registry.Validate(); err != nil {
		return fmt.Errorf("tool registry validation failed: %w", err)
	}

	return nil
}

// Stop stops the MCP server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping mdtoc MCP server")

	select {
	case <-ctx.Done():
		s.logger.Warn("Server stop timed out")
		return ctx.Err()
	default:
		s.logger.Info("Server stopped successfully")
		return nil
	}
}

// GetRegistry returns the tool registry.
func (s *Server) GetRegistry() *tools.Registry {
	return s.registry
}

// registerTools registers all tools with the server.
func (s *Server) registerTools() error {
	s.logger.Debug("Registering tools with MCP server")

	toolCtx := &tools.Context{
		Logger:    s.logger,
		Validator: s.validator,
		Config:    s.config,
	}

	allTools := collections.Concat(
		markdown.CreateTOCTools(toolCtx),
	)

	for _, tool := range allTools {
		if err := s.registry.Register(tool); err != nil {
			return err
		}
		s.logger.Debug("Registered tool", "name", tool.Tool.Name)
	}

	s.registry.Install(s.mcpServer)

	s.logger.Info("Successfully registered tools",
		slog.Int("count", len(allTools)),
		slog.Any("tools", s.registry.List()),
	)

	return nil
}

// Serve runs the MCP server with the specified transport.
// It connects the MCP server to the transport and waits for either
// the session to complete or the context to be cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Starting MCP server transport",
		slog.String("transport", fmt.Sprintf("%T", transport)),
	)

	session, err := s.mcpServer.Connect(ctx, transport)
	if err != nil {
		return fmt.Errorf("failed to connect MCP server: %w", err)
	}

	sessionDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("MCP session goroutine panicked",
					slog.Any("panic", r))
				sessionDone <- fmt.Errorf("session panicked: %v", r)
			}
		}()
		sessionDone <- session.Wait()
	}()

	select {
	case err := <-sessionDone:
		s.logger.Info("MCP session finished")
		return err
	case <-ctx.Done():
		s.logger.Info("MCP server shutting down due to context cancellation")
		return ctx.Err()
	}
}
