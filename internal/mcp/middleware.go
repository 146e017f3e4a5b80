package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type requestIDKey struct{}

// RequestID returns the id LoggingMiddleware assigned to the request being
// handled, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggingMiddleware returns middleware that tags each incoming call with a
// request id and logs its method, duration and outcome.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			id := uuid.NewString()
			ctx = context.WithValue(ctx, requestIDKey{}, id)
			start := time.Now()

			result, err := next(ctx, method, req)

			attrs := []slog.Attr{
				slog.String("request_id", id),
				slog.String("method", method),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if p, ok := req.GetParams().(*sdkmcp.CallToolParamsRaw); ok {
				attrs = append(attrs, slog.String("tool", p.Name))
			}
			if r, ok := result.(*sdkmcp.CallToolResult); ok && r != nil && r.IsError {
				attrs = append(attrs, slog.Bool("tool_error", true))
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			} else {
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}
