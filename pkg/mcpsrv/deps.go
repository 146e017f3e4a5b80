package mcpsrv

import (
	"github.com/usestring/safeparse-mcp/internal/mcp/tools"
)

// Deps contains all dependencies available to custom tools: configuration,
// the compiled-schema cache, the schema registry (nil without a schema
// directory) and the metrics collector (nil when metrics are disabled).
// Deps.ResolveSchema compiles or looks up a schema the same way the builtin
// tools do.
type Deps = tools.Deps
