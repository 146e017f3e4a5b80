package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/safeparse-mcp/internal/mcp/tools"
)

// Resource URI scheme: safeparse://
// Supported URIs:
//   safeparse://schema/{name}

const schemaURIPrefix = "safeparse://schema/"

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: schemaURIPrefix + "{name}",
		Name:        "Schema",
		Description: "A named schema from the schema directory, compiled to JSON Schema. Includes the discriminator and refine extension keywords. Use safeparse_list_schemas for names.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceSchema)
}

// SchemaResource is the content of a schema resource.
type SchemaResource struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	File   string `json:"file"`
	Schema any    `json:"schema"`
}

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	name, err := parseSchemaURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	if s.deps.Registry == nil {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	entry, ok := s.deps.Registry.Get(name)
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	slog.Debug("schema resource read",
		slog.String("request_id", RequestID(ctx)),
		slog.String("name", name),
	)

	return toResourceResult(req.Params.URI, SchemaResource{
		Name:   entry.Name,
		Format: string(entry.Format),
		File:   entry.File,
		Schema: entry.Validator.Document(),
	})
}

// parseSchemaURI extracts the schema name from a schema resource URI.
func parseSchemaURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, schemaURIPrefix) {
		return "", tools.ErrInvalidInput(fmt.Sprintf("invalid resource URI: %s", uri))
	}
	name := strings.TrimSuffix(strings.TrimPrefix(uri, schemaURIPrefix), "/")
	if name == "" || strings.Contains(name, "/") {
		return "", tools.ErrInvalidInput("schema URI requires a single schema name")
	}
	return name, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
