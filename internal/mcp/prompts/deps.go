// Package prompts contains MCP prompt implementations for safeparse.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	RegistryEnabled   bool
	DefaultFormatting string
	MaxBatchDocuments int
}
