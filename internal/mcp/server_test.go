package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/safeparse-mcp/internal/cache"
	"github.com/usestring/safeparse-mcp/internal/config"
	"github.com/usestring/safeparse-mcp/internal/mcp/tools"
	"github.com/usestring/safeparse-mcp/internal/registry"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

func testServer(t *testing.T, withRegistry bool) *Server {
	t.Helper()

	c, err := cache.NewSchemaCache(8)
	require.NoError(t, err)
	deps := &tools.Deps{
		Config: &config.Config{Formatting: types.PolicyDiagnostic, BatchWorkers: 2},
		Cache:  c,
	}

	if withRegistry {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "user.zod"),
			[]byte(`z.object({ name: z.string().describe("Full name") })`), 0o644))
		deps.Registry = registry.New(dir, c)
		require.NoError(t, deps.Registry.Load())
	}

	s, err := NewServer(deps, WithBuiltinTools(), WithBuiltinPrompts())
	require.NoError(t, err)
	return s
}

func TestNewServer_RequiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)

	_, err = NewServer(&tools.Deps{})
	assert.Error(t, err)
}

func TestNewServer_CustomRegistration(t *testing.T) {
	c, err := cache.NewSchemaCache(8)
	require.NoError(t, err)

	called := false
	_, err = NewServer(&tools.Deps{Config: &config.Config{}, Cache: c},
		WithCustomRegistration(func(srv *sdkmcp.Server) { called = true }),
	)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestHandleResourceSchema(t *testing.T) {
	s := testServer(t, true)

	res, err := s.handleResourceSchema(context.Background(), &sdkmcp.ReadResourceRequest{
		Params: &sdkmcp.ReadResourceParams{URI: "safeparse://schema/user"},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, tools.MimeJSON, res.Contents[0].MIMEType)

	var got SchemaResource
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &got))
	assert.Equal(t, "user", got.Name)
	assert.Equal(t, "zod", got.Format)
	assert.Equal(t, "user.zod", got.File)

	doc, ok := got.Schema.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", doc["type"])
}

func TestHandleResourceSchema_NotFound(t *testing.T) {
	for _, withRegistry := range []bool{true, false} {
		s := testServer(t, withRegistry)
		_, err := s.handleResourceSchema(context.Background(), &sdkmcp.ReadResourceRequest{
			Params: &sdkmcp.ReadResourceParams{URI: "safeparse://schema/missing"},
		})
		assert.Error(t, err)
	}
}

func TestParseSchemaURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{uri: "safeparse://schema/user", want: "user"},
		{uri: "safeparse://schema/user/", want: "user"},
		{uri: "safeparse://schema/", wantErr: true},
		{uri: "safeparse://schema/a/b", wantErr: true},
		{uri: "https://example.com/schema/user", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parseSchemaURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))

	var seen string
	handler := LoggingMiddleware()(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		seen = RequestID(ctx)
		return nil, nil
	})

	_, err := handler(context.Background(), "resources/read", &sdkmcp.ReadResourceRequest{
		Params: &sdkmcp.ReadResourceParams{URI: "safeparse://schema/user"},
	})
	require.NoError(t, err)
	assert.Len(t, seen, 36)
}
