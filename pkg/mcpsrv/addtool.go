package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/safeparse-mcp/internal/mcp/tools"
)

// AddTool registers a tool with the server after checking that the zero
// value of Out passes the output schema the SDK infers for it. A nil slice
// field marshals as null but is inferred as an array, which would make every
// empty result fail at runtime; AddTool panics at registration instead.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
