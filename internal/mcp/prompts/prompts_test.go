package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *sdkmcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleFixValidationErrors(t *testing.T) {
	cfg := &Config{RegistryEnabled: true, DefaultFormatting: "diagnostic"}

	res, err := HandleFixValidationErrors(cfg)(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{Arguments: map[string]string{
			"schema_name": "signup",
			"formatting":  "privacy-preserving",
		}},
	})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, `schema_name: "signup"`)
	assert.Contains(t, text, `formatting: "privacy-preserving"`)
	assert.Contains(t, text, "safeparse://schema/{name}")
}

func TestHandleFixValidationErrors_NoArguments(t *testing.T) {
	res, err := HandleFixValidationErrors(&Config{DefaultFormatting: "diagnostic"})(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{},
	})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, "inline with `schema` and `schema_format`")
	assert.NotContains(t, text, "safeparse_list_schemas")
}

func TestHandleAuditDocuments(t *testing.T) {
	res, err := HandleAuditDocuments(&Config{MaxBatchDocuments: 1000})(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{Arguments: map[string]string{"select": ".items[]"}},
	})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, `select: ".items[]"`)
	assert.Contains(t, text, "at most 1000 documents")
}
