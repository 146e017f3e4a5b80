package tools

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/safeparse-mcp/pkg/safeparse"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// ValidateInput is the input for safeparse_validate.
type ValidateInput struct {
	Schema       string `json:"schema,omitempty" jsonschema:"Inline schema source (Zod, JSON Schema, YAML or Go struct)"`
	SchemaName   string `json:"schema_name,omitempty" jsonschema:"Name of a schema from the schema directory (instead of schema)"`
	SchemaFormat string `json:"schema_format,omitempty" jsonschema:"Format of the inline schema: zod, json_schema, yaml or go_struct"`
	Document     any    `json:"document,omitempty" jsonschema:"The JSON value to validate"`
	DocumentText string `json:"document_text,omitempty" jsonschema:"The document as raw JSON text (instead of document)"`
	Select       string `json:"select,omitempty" jsonschema:"JQ expression selecting the part of the document to validate"`
	Formatting   string `json:"formatting,omitempty" jsonschema:"Formatting policy: diagnostic or privacy-preserving (default: server setting)"`
}

// ValidateOutput is the output for safeparse_validate.
type ValidateOutput struct {
	Status     string                 `json:"status"`
	Value      any                    `json:"value,omitempty"`
	Errors     []types.FormattedError `json:"errors,omitzero"`
	SchemaName string                 `json:"schema_name,omitempty"`
	Formatting string                 `json:"formatting"`
}

// ToolValidate validates one document against a schema.
func ToolValidate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
		rs, err := d.ResolveSchema(input.SchemaName, input.Schema, input.SchemaFormat)
		if err != nil {
			return nil, ValidateOutput{}, err
		}

		sel, err := compileSelect(input.Select)
		if err != nil {
			return nil, ValidateOutput{}, err
		}

		content, err := documentOf(input.Document, input.DocumentText, sel)
		if err != nil {
			return nil, ValidateOutput{}, err
		}

		policy := d.Policy(input.Formatting)
		out := d.validateOne(content, rs, policy)

		output := ValidateOutput{
			Status:     out.Status(),
			SchemaName: rs.Name,
			Formatting: string(policy),
		}
		safeparse.Match(out,
			func(v any) struct{} {
				output.Value = v
				return struct{}{}
			},
			func(errs []types.FormattedError) struct{} {
				output.Errors = errs
				return struct{}{}
			},
		)

		slog.Debug("document validated",
			slog.String("status", output.Status),
			slog.Int("errors", len(output.Errors)),
			slog.String("format", string(rs.Format)),
		)
		return nil, output, nil
	}
}
