// Package registry loads named schemas from a directory and keeps them
// compiled, optionally reloading when the directory changes.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/usestring/safeparse-mcp/internal/cache"
	"github.com/usestring/safeparse-mcp/pkg/schema"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// extensions maps schema file extensions to their formats.
var extensions = map[string]types.SchemaFormat{
	".json": types.FormatJSONSchema,
	".yaml": types.FormatYAML,
	".yml":  types.FormatYAML,
	".zod":  types.FormatZod,
	".go":   types.FormatGoStruct,
}

// FormatForPath returns the schema format of a file by extension.
func FormatForPath(path string) (types.SchemaFormat, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Entry is a compiled named schema.
type Entry struct {
	Name      string             `json:"name"`
	Format    types.SchemaFormat `json:"format"`
	File      string             `json:"file"`
	Source    string             `json:"-"`
	LoadedAt  time.Time          `json:"loaded_at"`
	Validator *schema.Validator  `json:"-"`
}

// Registry holds the schemas of one directory.
type Registry struct {
	dir   string
	cache *cache.SchemaCache

	mu       sync.RWMutex
	entries  map[string]*Entry
	problems map[string]string
	onLoad   func(schemas int)
}

// New creates a registry for dir. Compiled validators are shared through c.
func New(dir string, c *cache.SchemaCache) *Registry {
	return &Registry{
		dir:      dir,
		cache:    c,
		entries:  make(map[string]*Entry),
		problems: make(map[string]string),
	}
}

// OnLoad sets a callback invoked after every successful load with the
// number of schemas loaded.
func (r *Registry) OnLoad(fn func(schemas int)) {
	r.mu.Lock()
	r.onLoad = fn
	r.mu.Unlock()
}

// Dir returns the watched directory.
func (r *Registry) Dir() string { return r.dir }

// Load scans the directory and replaces the registry contents. Files that
// fail to compile are reported by Problems and do not fail the load. Load
// fails only when the directory cannot be read.
func (r *Registry) Load() error {
	dirEntries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading schema dir: %w", err)
	}

	entries := make(map[string]*Entry)
	problems := make(map[string]string)

	// ReadDir returns entries sorted by filename, so the first file of a
	// duplicated name wins.
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		file := de.Name()
		format, ok := FormatForPath(file)
		if !ok {
			continue
		}
		name := strings.TrimSuffix(file, filepath.Ext(file))

		if prev, dup := entries[name]; dup {
			problems[file] = fmt.Sprintf("schema %q is already defined by %s", name, prev.File)
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.dir, file))
		if err != nil {
			problems[file] = err.Error()
			continue
		}
		source := string(data)

		v, _, err := r.cache.GetOrCompile(format, source)
		if err != nil {
			problems[file] = err.Error()
			continue
		}

		entries[name] = &Entry{
			Name:      name,
			Format:    format,
			File:      file,
			Source:    source,
			LoadedAt:  time.Now(),
			Validator: v,
		}
	}

	r.mu.Lock()
	r.entries = entries
	r.problems = problems
	onLoad := r.onLoad
	r.mu.Unlock()

	if onLoad != nil {
		onLoad(len(entries))
	}

	slog.Info("schema registry loaded", "dir", r.dir, "schemas", len(entries), "problems", len(problems))
	for file, msg := range problems {
		slog.Warn("schema file skipped", "file", file, "error", msg)
	}
	return nil
}

// Get returns the named schema.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// List returns all schemas sorted by name.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Problems returns the files skipped by the last load, keyed by filename.
func (r *Registry) Problems() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.problems))
	for k, v := range r.problems {
		out[k] = v
	}
	return out
}

// Watch reloads the registry whenever a schema file in the directory
// changes. Bursts of events within debounce trigger a single reload.
// Watch blocks until ctx is done.
func (r *Registry) Watch(ctx context.Context, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(r.dir); err != nil {
		return fmt.Errorf("watching %s: %w", r.dir, err)
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, known := FormatForPath(ev.Name); !known {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
				!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("schema file changed", "file", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := r.Load(); err != nil {
				slog.Error("schema registry reload failed", "error", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("schema watcher error", "error", err)
		}
	}
}
