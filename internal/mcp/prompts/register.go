package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Fix a document that fails validation
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "fix_validation_errors",
		Description: "RECOMMENDED: Validate a document, read the formatted errors and repair the document until it passes. Explains how paths and messages are shaped under each formatting policy.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "schema_name",
				Description: "Named schema from safeparse_list_schemas (omit to supply an inline schema)",
				Required:    false,
			},
			{
				Name:        "formatting",
				Description: "diagnostic or privacy-preserving",
				Required:    false,
			},
		},
	}, HandleFixValidationErrors(cfg))

	// Prompt 2: Audit a set of documents
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "audit_documents",
		Description: "Validate a collection of documents against one schema and summarise what they get wrong, using common_errors to find systematic problems.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "schema_name",
				Description: "Named schema from safeparse_list_schemas (omit to supply an inline schema)",
				Required:    false,
			},
			{
				Name:        "select",
				Description: "JQ expression locating the validated part of each document (e.g. '.data.items[]')",
				Required:    false,
			},
		},
	}, HandleAuditDocuments(cfg))
}
