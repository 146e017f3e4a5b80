// Package mcpsrv provides an extensible MCP server for safeparse.
//
// The server validates JSON documents against Zod, JSON Schema, YAML or Go
// struct schemas and returns outcomes whose error messages follow a
// formatting policy (diagnostic or privacy-preserving). Users can extend it
// with custom tools, prompts and resources using functional options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Custom tools get the same schema resolution as the builtin ones:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "check_order", Description: "Validate an order"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in OrderInput) (*mcp.CallToolResult, OrderOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in OrderInput) (*mcp.CallToolResult, OrderOutput, error) {
//	            rs, err := d.ResolveSchema("order", "", "")
//	            if err != nil {
//	                return nil, OrderOutput{}, err
//	            }
//	            out := safeparse.SafeParse(in.Order, rs.Validator, d.Policy(""))
//	            return nil, OrderOutput{Status: out.Status()}, nil
//	        }
//	    },
//	)
//
// # Configuration
//
// Defaults come from environment variables (see internal/config). Options
// override them:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithFormatting(types.PolicyPrivacyPreserving),
//	    mcpsrv.WithSchemaDir("./schemas", true),
//	    mcpsrv.WithLogLevel("debug"),
//	)
package mcpsrv
