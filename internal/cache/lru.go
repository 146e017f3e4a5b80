// Package cache provides caching utilities for the MCP server.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/safeparse-mcp/pkg/schema"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// SchemaCache provides thread-safe LRU caching for compiled validators,
// keyed by schema format and a hash of the schema source.
type SchemaCache struct {
	cache *lru.Cache[string, *schema.Validator]
	group singleflight.Group
}

// NewSchemaCache creates a new LRU cache with the specified maximum number of items.
func NewSchemaCache(maxItems int) (*SchemaCache, error) {
	c, err := lru.New[string, *schema.Validator](maxItems)
	if err != nil {
		return nil, err
	}
	return &SchemaCache{cache: c}, nil
}

// Key returns the cache key of a schema source.
func Key(format types.SchemaFormat, source string) string {
	sum := sha256.Sum256([]byte(source))
	return string(format) + ":" + hex.EncodeToString(sum[:])
}

// Get retrieves a validator from the cache.
// Returns the validator and true if found, nil and false otherwise.
func (c *SchemaCache) Get(format types.SchemaFormat, source string) (*schema.Validator, bool) {
	return c.cache.Get(Key(format, source))
}

// Put adds or updates a validator in the cache.
func (c *SchemaCache) Put(format types.SchemaFormat, source string, v *schema.Validator) {
	c.cache.Add(Key(format, source), v)
}

// GetOrCompile returns the cached validator for the source, compiling it
// with schema.NewValidator on a miss. Concurrent misses for the same key
// compile once. The second result reports a cache hit.
func (c *SchemaCache) GetOrCompile(format types.SchemaFormat, source string) (*schema.Validator, bool, error) {
	key := Key(format, source)
	if v, ok := c.cache.Get(key); ok {
		return v, true, nil
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		v, err := schema.NewValidator(source, format)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, v)
		return v, nil
	})
	if err != nil {
		return nil, false, err
	}
	return res.(*schema.Validator), false, nil
}

// Purge removes every entry.
func (c *SchemaCache) Purge() {
	c.cache.Purge()
}

// Len returns the current number of items in the cache.
func (c *SchemaCache) Len() int {
	return c.cache.Len()
}
