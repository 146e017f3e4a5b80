package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/safeparse-mcp/internal/config"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config *config.Config

	// Logging overrides
	logLevel string
	logFile  string

	// Extension toggles
	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Custom extensions - registration callbacks that preserve generic type info
	toolRegistrations     []func(*mcp.Server)
	promptRegistrations   []func(*mcp.Server)
	resourceRegistrations []func(*mcp.Server)

	// Deferred tool registrations that need access to Deps
	deferredToolRegistrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithConfig replaces the configuration loaded from the environment.
// Options applied after it still override individual settings.
func WithConfig(cfg *config.Config) Option {
	return func(c *serverConfig) {
		if cfg != nil {
			c.config = cfg
		}
	}
}

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path.
// If empty, logs are written to stderr only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithFormatting sets the default formatting policy for tools that are not
// given one.
func WithFormatting(policy types.FormattingPolicy) Option {
	return func(cfg *serverConfig) {
		cfg.config.Formatting = policy
	}
}

// WithSchemaDir serves the schemas of dir by name. When watch is true the
// directory is reloaded on change.
func WithSchemaDir(dir string, watch bool) Option {
	return func(cfg *serverConfig) {
		cfg.config.SchemaDir = dir
		cfg.config.SchemaWatch = watch
	}
}

// WithBatchWorkers bounds the number of documents validated at once by
// safeparse_validate_batch.
func WithBatchWorkers(n int) Option {
	return func(cfg *serverConfig) {
		cfg.config.BatchWorkers = n
	}
}

// WithMetricsAddr serves Prometheus metrics at addr/metrics.
func WithMetricsAddr(addr string) Option {
	return func(cfg *serverConfig) {
		cfg.config.MetricsAddr = addr
	}
}

// WithoutBuiltinTools disables all builtin safeparse tools and resources.
// Use this if you want to register only your own tools.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables all builtin safeparse prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a custom tool with the server.
//
// The handler signature must match the MCP SDK pattern:
//
//	func(ctx context.Context, req *mcp.CallToolRequest, input T) (*mcp.CallToolResult, Out, error)
//
// Where T is the input type (will be unmarshaled from JSON) and Out is the
// output type (will be marshaled to JSON).
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.toolRegistrations = append(cfg.toolRegistrations, func(srv *mcp.Server) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool that has access to Deps.
// Use this when your tool needs the schema cache, registry or metrics.
//
// The builder receives Deps and returns a handler function.
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.deferredToolRegistrations = append(cfg.deferredToolRegistrations, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a custom prompt with the server.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.promptRegistrations = append(cfg.promptRegistrations, func(srv *mcp.Server) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a custom resource template with the server.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.resourceRegistrations = append(cfg.resourceRegistrations, func(srv *mcp.Server) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
