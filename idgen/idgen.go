// Package idgen allocates monotonic, process-unique identifiers for scene
// entities, layers, groups, and commands.
package idgen

import (
	"fmt"
	"sync/atomic"
)

// ID is an opaque, stable identifier for the lifetime of the object it names.
// It is a string so it serializes directly into the project JSON format
// without any encoding step.
type ID string

// Counter is a basic atomic int64 counter.
type Counter int64

// Inc increments the counter by 1 and returns the new value.
func (c *Counter) Inc() int64 {
	return atomic.AddInt64((*int64)(c), 1)
}

// Value returns the current value.
func (c *Counter) Value() int64 {
	return atomic.LoadInt64((*int64)(c))
}

// Generator produces unique, kind-tagged ids such as "ent-000042". Each
// kind tag gets its own counter so ids stay short and readable across a
// long editing session. Each Counter is atomic, but the map of counters
// is not guarded by a lock, so a Generator is not safe for concurrent
// use; the scene store is single-threaded and the autosave goroutine
// never allocates ids.
type Generator struct {
	counters map[string]*Counter
}

// NewGenerator returns a ready-to-use Generator.
func NewGenerator() *Generator {
	return &Generator{counters: make(map[string]*Counter)}
}

// Next returns the next id for the given kind tag (e.g. "ent", "layer",
// "group", "cmd"). Tags are not validated; callers choose short stable
// strings.
func (g *Generator) Next(kind string) ID {
	c, ok := g.counters[kind]
	if !ok {
		c = &Counter{}
		g.counters[kind] = c
	}
	n := c.Inc()
	return ID(fmt.Sprintf("%s-%06d", kind, n))
}

// Empty reports whether id is the zero value, i.e. unset.
func (id ID) Empty() bool { return id == "" }

// Observe advances the counter for kind so that the next Next(kind)
// call returns an id strictly after n. Used when loading ids minted by
// a previous session (e.g. from a decoded project file) so freshly
// generated ids can never collide with ones already on disk.
func (g *Generator) Observe(kind string, n int64) {
	c, ok := g.counters[kind]
	if !ok {
		c = &Counter{}
		g.counters[kind] = c
	}
	for c.Value() < n {
		c.Inc()
	}
}
