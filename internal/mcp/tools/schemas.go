package tools

import (
	"context"
	"sort"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListSchemasInput is the input for safeparse_list_schemas.
type ListSchemasInput struct {
	Reload bool `json:"reload,omitempty" jsonschema:"Rescan the schema directory before listing"`
}

// ListSchemasOutput is the output for safeparse_list_schemas.
type ListSchemasOutput struct {
	Dir      string          `json:"dir,omitempty"`
	Schemas  []SchemaInfo    `json:"schemas,omitzero"`
	Problems []SchemaProblem `json:"problems,omitzero"`
	Hint     string          `json:"hint,omitempty"`
}

// SchemaInfo describes one registry schema.
type SchemaInfo struct {
	Name        string `json:"name"`
	Format      string `json:"format"`
	File        string `json:"file"`
	Description string `json:"description,omitempty"`
	URI         string `json:"uri"`
	LoadedAt    string `json:"loaded_at"`
}

// SchemaProblem is a schema file that could not be loaded.
type SchemaProblem struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ToolListSchemas lists the schemas of the schema directory.
func ToolListSchemas(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListSchemasInput) (*sdkmcp.CallToolResult, ListSchemasOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListSchemasInput) (*sdkmcp.CallToolResult, ListSchemasOutput, error) {
		out := ListSchemasOutput{Schemas: []SchemaInfo{}}
		if d.Registry == nil {
			out.Hint = "No schema directory is configured. Set SCHEMA_DIR to serve named schemas, or pass schema and schema_format inline."
			return nil, out, nil
		}

		if input.Reload {
			if err := d.Registry.Load(); err != nil {
				return nil, ListSchemasOutput{}, &CodedError{Code: ErrCodeNotFound, Message: "schema directory unavailable", Cause: err}
			}
		}

		out.Dir = d.Registry.Dir()
		entries := d.Registry.List()
		for _, e := range entries {
			out.Schemas = append(out.Schemas, SchemaInfo{
				Name:        e.Name,
				Format:      string(e.Format),
				File:        e.File,
				Description: describe(e.Validator.Document()),
				URI:         SchemaURI(e.Name),
				LoadedAt:    e.LoadedAt.UTC().Format(time.RFC3339),
			})
		}

		for file, msg := range d.Registry.Problems() {
			out.Problems = append(out.Problems, SchemaProblem{File: file, Error: msg})
		}
		sort.Slice(out.Problems, func(i, j int) bool { return out.Problems[i].File < out.Problems[j].File })

		if len(out.Schemas) == 0 {
			out.Hint = "The schema directory has no loadable *.json, *.yaml, *.yml, *.zod or *.go files."
		}
		return nil, out, nil
	}
}

// SchemaURI returns the resource URI of a registry schema.
func SchemaURI(name string) string {
	return "safeparse://schema/" + name
}

// describe returns the top-level description or title of a schema document.
func describe(doc any) string {
	m, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := m["description"].(string); ok {
		return s
	}
	if s, ok := m["title"].(string); ok {
		return s
	}
	return ""
}
