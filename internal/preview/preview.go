// Package preview shortens decoded JSON values for display in tool output.
package preview

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Options bounds the size of a preview. Zero fields mean no limit.
type Options struct {
	MaxArrayItems int
	MaxObjectKeys int
	MaxStringLen  int // in runes
	MaxDepth      int
}

// Default limits used by the batch tool.
const (
	DefaultMaxArrayItems = 3
	DefaultMaxObjectKeys = 20
	DefaultMaxStringLen  = 200
	DefaultMaxDepth      = 6
)

// DefaultOptions returns the default preview limits.
func DefaultOptions() Options {
	return Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxObjectKeys: DefaultMaxObjectKeys,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Value returns a copy of v with long arrays, objects and strings cut short.
// Cut content is replaced by a marker saying how much was left out. Values
// other than strings, []any and map[string]any are returned unchanged.
func Value(v any, opts Options) any {
	return preview(v, opts, 0)
}

func preview(v any, opts Options, depth int) any {
	switch val := v.(type) {
	case []any:
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			return fmt.Sprintf("[array of %d]", len(val))
		}
		return previewArray(val, opts, depth)
	case map[string]any:
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			return fmt.Sprintf("[object with %d keys]", len(val))
		}
		return previewObject(val, opts, depth)
	case string:
		return previewString(val, opts)
	default:
		return v
	}
}

func previewString(s string, opts Options) string {
	if opts.MaxStringLen <= 0 || utf8.RuneCountInString(s) <= opts.MaxStringLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:opts.MaxStringLen]) + fmt.Sprintf("... (%d more chars)", len(runes)-opts.MaxStringLen)
}

func previewArray(arr []any, opts Options, depth int) []any {
	keep := len(arr)
	if opts.MaxArrayItems > 0 && keep > opts.MaxArrayItems {
		keep = opts.MaxArrayItems
	}

	out := make([]any, 0, keep+1)
	for _, item := range arr[:keep] {
		out = append(out, preview(item, opts, depth+1))
	}
	if keep < len(arr) {
		out = append(out, fmt.Sprintf("... (%d more items)", len(arr)-keep))
	}
	return out
}

// previewObject keeps the first MaxObjectKeys keys in sorted order so
// previews are stable across runs.
func previewObject(obj map[string]any, opts Options, depth int) map[string]any {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keep := len(keys)
	if opts.MaxObjectKeys > 0 && keep > opts.MaxObjectKeys {
		keep = opts.MaxObjectKeys
	}

	out := make(map[string]any, keep+1)
	for _, k := range keys[:keep] {
		out[k] = preview(obj[k], opts, depth+1)
	}
	if keep < len(keys) {
		out["..."] = fmt.Sprintf("%d more keys", len(keys)-keep)
	}
	return out
}
