package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleAuditDocuments guides an agent through batch validation.
func HandleAuditDocuments(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		schemaName := argument(req, "schema_name")
		sel := argument(req, "select")

		var sb strings.Builder

		sb.WriteString("# Audit Documents\n\n")
		sb.WriteString("You check a collection of documents against one schema and report systematic problems.\n\n")

		sb.WriteString("## Workflow\n\n")
		sb.WriteString("1. Call `safeparse_validate_batch` with all documents")
		if schemaName != "" {
			fmt.Fprintf(&sb, ", `schema_name: %q`", schemaName)
		}
		if sel != "" {
			fmt.Fprintf(&sb, ", `select: %q`", sel)
		}
		sb.WriteString(" and `only_failures: true`.\n")
		if cfg.MaxBatchDocuments > 0 {
			fmt.Fprintf(&sb, "   A call accepts at most %d documents; split larger collections and merge the summaries.\n", cfg.MaxBatchDocuments)
		}
		sb.WriteString("2. Start from `common_errors`: each entry is one message shared by several documents, with their indices. These point at producer bugs rather than one-off mistakes.\n")
		sb.WriteString("3. Then scan `results` for errors that appear only once. Documents missing from `commonly_failing` have only such errors.\n")
		sb.WriteString("4. `skipped` documents had nothing at the `select` path; report them separately.\n")

		sb.WriteString("\n## Report\n\n")
		sb.WriteString("- Totals from `summary`.\n")
		sb.WriteString("- One line per common error: path, message, number of documents.\n")
		sb.WriteString("- The likely cause of each systematic problem.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Audit documents against a schema",
			Messages: []*sdkmcp.PromptMessage{
				{Role: "user", Content: &sdkmcp.TextContent{Text: sb.String()}},
			},
		}, nil
	}
}
