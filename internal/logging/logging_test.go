package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, Config{Level: "info", Format: "json"}))

	logger.Debug("hidden")
	logger.Info("validated", "status", "failure", "errors", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "validated", rec["msg"])
	assert.Equal(t, "failure", rec["status"])
	assert.EqualValues(t, 2, rec["errors"])
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, Config{Level: "debug"}))
	logger.Debug("compiled", "format", "zod")
	assert.Contains(t, buf.String(), "format=zod")
}

func TestOpenWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	w, cleanup, err := openWriter(Config{FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.NoError(t, cleanup())
	assert.FileExists(t, path)
}
