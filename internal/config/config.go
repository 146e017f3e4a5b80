// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/safeparse-mcp/pkg/types"
)

// Batch and cache defaults
const (
	DefaultBatchWorkersValue      = 8
	DefaultMaxBatchDocumentsValue = 1000
	DefaultSchemaCacheMaxItems    = 256
	DefaultCommonErrorsLimitValue = 10
)

// Config holds all configuration for the MCP server.
type Config struct {
	Formatting types.FormattingPolicy // SAFEPARSE_FORMATTING, default "diagnostic"

	// Schema registry
	SchemaDir           string        // SCHEMA_DIR, default "" (no registry)
	SchemaWatch         bool          // SCHEMA_WATCH, default false
	SchemaWatchDebounce time.Duration // SCHEMA_WATCH_DEBOUNCE_MS, default 200ms
	SchemaCacheMaxItems int           // SCHEMA_CACHE_MAX_ITEMS, default 256

	// Batch validation
	BatchWorkers      int // BATCH_WORKERS, default 8
	MaxBatchDocuments int // MAX_BATCH_DOCUMENTS, default 1000
	CommonErrorsLimit int // COMMON_ERRORS_LIMIT, default 10

	// Metrics
	MetricsAddr string // METRICS_ADDR, default "" (disabled)

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Formatting: types.ParsePolicy(getEnvString("SAFEPARSE_FORMATTING", string(types.PolicyDiagnostic))),

		SchemaDir:           getEnvString("SCHEMA_DIR", ""),
		SchemaWatch:         getEnvBool("SCHEMA_WATCH", false),
		SchemaWatchDebounce: getEnvDurationMs("SCHEMA_WATCH_DEBOUNCE_MS", 200),
		SchemaCacheMaxItems: getEnvInt("SCHEMA_CACHE_MAX_ITEMS", DefaultSchemaCacheMaxItems),

		BatchWorkers:      getEnvInt("BATCH_WORKERS", DefaultBatchWorkersValue),
		MaxBatchDocuments: getEnvInt("MAX_BATCH_DOCUMENTS", DefaultMaxBatchDocumentsValue),
		CommonErrorsLimit: getEnvInt("COMMON_ERRORS_LIMIT", DefaultCommonErrorsLimitValue),

		MetricsAddr: getEnvString("METRICS_ADDR", ""),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
