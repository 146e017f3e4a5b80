package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleFixValidationErrors guides an agent through the validate and repair loop.
func HandleFixValidationErrors(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		schemaName := argument(req, "schema_name")
		formatting := argument(req, "formatting")
		if formatting == "" {
			formatting = cfg.DefaultFormatting
		}

		var sb strings.Builder

		sb.WriteString("# Fix Validation Errors\n\n")
		sb.WriteString("You repair JSON documents so they satisfy a schema. ")
		sb.WriteString("Work from the formatted errors only; do not guess at rules the errors do not mention.\n\n")

		sb.WriteString("## Schema\n\n")
		switch {
		case schemaName != "":
			fmt.Fprintf(&sb, "Validate with `schema_name: %q`.\n", schemaName)
		case cfg.RegistryEnabled:
			sb.WriteString("Call `safeparse_list_schemas` to pick a named schema, or pass `schema` and `schema_format` inline.\n")
		default:
			sb.WriteString("Pass the schema inline with `schema` and `schema_format` (zod, json_schema, yaml or go_struct).\n")
		}

		sb.WriteString("\n## Loop\n\n")
		sb.WriteString("1. Call `safeparse_validate` with the document")
		if formatting != "" {
			fmt.Fprintf(&sb, " and `formatting: %q`", formatting)
		}
		sb.WriteString(".\n")
		sb.WriteString("2. If `status` is `success`, stop. `value` is the validated document.\n")
		sb.WriteString("3. Otherwise fix every entry of `errors`, then validate again. Fix all errors in one pass; they are independent.\n")

		sb.WriteString("\n## Reading Errors\n\n")
		sb.WriteString("- `path` is dot-separated; numeric segments are array indices (`items.2.qty`). An empty path means the whole document.\n")
		sb.WriteString("- A missing field reports received `undefined`: add the field.\n")
		sb.WriteString("- Union errors list the accepted alternatives (`I would review ... or ...`): pick one alternative and make the value match it exactly.\n")

		sb.WriteString("\n## Formatting Policies\n\n")
		sb.WriteString("| policy | messages contain |\n")
		sb.WriteString("|--------|------------------|\n")
		sb.WriteString("| diagnostic | expected and received types, bounds, allowed values |\n")
		sb.WriteString("| privacy-preserving | fixed labels only, no received values, bounds or candidates |\n")
		if strings.HasPrefix(formatting, "privacy") {
			sb.WriteString("\nMessages will not say which values are allowed. Read the schema (resource `safeparse://schema/{name}`) when you need bounds or enum members.\n")
		}

		return &sdkmcp.GetPromptResult{
			Description: "Validate and repair a document",
			Messages: []*sdkmcp.PromptMessage{
				{Role: "user", Content: &sdkmcp.TextContent{Text: sb.String()}},
			},
		}, nil
	}
}

func argument(req *sdkmcp.GetPromptRequest, name string) string {
	if req == nil || req.Params == nil || req.Params.Arguments == nil {
		return ""
	}
	return strings.TrimSpace(req.Params.Arguments[name])
}
