package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: safeparse_validate
	AddTool(srv, &sdkmcp.Tool{
		Name:        "safeparse_validate",
		Description: "Validate one JSON document against a schema and return {status, value} on success or {status, errors: [{path, message}]} on failure. Pass an inline schema with schema_format (zod, json_schema, yaml, go_struct) or a schema_name from safeparse_list_schemas. Use select (JQ) to validate part of a document. formatting=privacy-preserving omits received values, bounds and candidates from messages.",
	}, ToolValidate(d))

	// Tool 2: safeparse_validate_batch
	AddTool(srv, &sdkmcp.Tool{
		Name:        "safeparse_validate_batch",
		Description: "Validate many JSON documents against one schema concurrently. Returns {summary: {total, succeeded, failed, skipped}, results: [{index, status, errors}], common_errors: [{path, message, count, documents}], commonly_failing: [index]}. common_errors lists errors shared by two or more documents, most frequent first; commonly_failing is the union of their documents. Set only_failures=true to drop successful documents from results. Successful values are shortened previews unless full_values=true.",
	}, ToolValidateBatch(d))

	// Tool 3: safeparse_list_schemas
	AddTool(srv, &sdkmcp.Tool{
		Name:        "safeparse_list_schemas",
		Description: "List the named schemas loaded from the schema directory with their format, source file and resource URI. Set reload=true to rescan the directory. Files that failed to load are listed under problems.",
	}, ToolListSchemas(d))
}
