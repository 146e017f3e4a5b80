package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/safeparse-mcp/internal/cache"
	"github.com/usestring/safeparse-mcp/internal/config"
	"github.com/usestring/safeparse-mcp/internal/logging"
	"github.com/usestring/safeparse-mcp/internal/mcp"
	"github.com/usestring/safeparse-mcp/internal/metrics"
	"github.com/usestring/safeparse-mcp/internal/registry"
)

// Server is the safeparse MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin safeparse tools.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	schemaCache, err := cache.NewSchemaCache(cfg.config.SchemaCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema cache: %w", err)
	}

	deps := &Deps{
		Config: cfg.config,
		Cache:  schemaCache,
	}
	if cfg.config.MetricsAddr != "" {
		deps.Metrics = metrics.NewCollector()
	}
	if cfg.config.SchemaDir != "" {
		deps.Registry = registry.New(cfg.config.SchemaDir, schemaCache)
		deps.Registry.OnLoad(deps.Metrics.SetRegistrySchemas)
		if err := deps.Registry.Load(); err != nil {
			return nil, fmt.Errorf("failed to load schema dir: %w", err)
		}
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(deps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport, together with the schema
// directory watcher and the metrics listener when they are configured.
// It returns when the context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	cfg := s.deps.Config

	if s.deps.Registry != nil && cfg.SchemaWatch {
		g.Go(func() error {
			slog.Info("watching schema dir", "dir", cfg.SchemaDir)
			return s.deps.Registry.Watch(ctx, cfg.SchemaWatchDebounce)
		})
	}
	if s.deps.Metrics != nil {
		g.Go(func() error {
			return s.deps.Metrics.Serve(ctx, cfg.MetricsAddr)
		})
	}

	g.Go(func() error {
		defer cancel()
		return s.internal.Run(ctx)
	})

	return g.Wait()
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server, for in-process transports
// and tests.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
