package tools

import (
	"fmt"
	"strings"

	"github.com/usestring/safeparse-mcp/internal/batch"
	"github.com/usestring/safeparse-mcp/internal/cache"
	"github.com/usestring/safeparse-mcp/internal/config"
	"github.com/usestring/safeparse-mcp/internal/metrics"
	"github.com/usestring/safeparse-mcp/internal/registry"
	"github.com/usestring/safeparse-mcp/pkg/schema"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config   *config.Config
	Cache    *cache.SchemaCache
	Registry *registry.Registry // nil when no schema directory is configured
	Metrics  *metrics.Collector // nil when metrics are disabled
}

// ResolvedSchema is a compiled schema ready for validation.
type ResolvedSchema struct {
	Validator *schema.Validator
	Name      string // registry name, empty for inline schemas
	Format    types.SchemaFormat
}

// ResolveSchema returns the registry schema called name, or compiles source
// in the given format when name is empty.
func (d *Deps) ResolveSchema(name, source, format string) (*ResolvedSchema, error) {
	if name != "" {
		if source != "" {
			return nil, ErrInvalidInput("schema and schema_name are mutually exclusive")
		}
		if d.Registry == nil {
			return nil, ErrNotFound("schema", name+" (no schema directory configured)")
		}
		entry, ok := d.Registry.Get(name)
		if !ok {
			return nil, ErrNotFound("schema", name)
		}
		return &ResolvedSchema{Validator: entry.Validator, Name: entry.Name, Format: entry.Format}, nil
	}

	if source == "" {
		return nil, ErrInvalidInput("either schema or schema_name is required")
	}
	if format == "" {
		return nil, ErrInvalidInput("schema_format is required with an inline schema")
	}
	f, ok := types.ParseSchemaFormat(format)
	if !ok {
		names := make([]string, 0, len(types.SchemaFormats()))
		for _, sf := range types.SchemaFormats() {
			names = append(names, string(sf))
		}
		return nil, ErrInvalidInput(fmt.Sprintf("unknown schema_format %q: use one of %s", format, strings.Join(names, ", ")))
	}

	v, hit, err := d.Cache.GetOrCompile(f, source)
	d.Metrics.RecordCacheLookup(hit)
	if err != nil {
		return nil, ErrSchema(err)
	}
	return &ResolvedSchema{Validator: v, Format: f}, nil
}

// Policy returns the formatting policy named in tool input, falling back to
// the configured default.
func (d *Deps) Policy(s string) types.FormattingPolicy {
	if s == "" {
		return d.Config.Formatting
	}
	return types.ParsePolicy(s)
}

// Runner returns a batch runner configured from Config.
func (d *Deps) Runner(prepare func(any) (any, error)) *batch.Runner {
	return batch.NewRunner(batch.Options{
		Workers:           d.Config.BatchWorkers,
		CommonErrorsLimit: d.Config.CommonErrorsLimit,
		Prepare:           prepare,
	})
}
