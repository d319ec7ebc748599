package bind

import (
	"reflect"
	"sync"

	"github.com/randalmurphal/propkit/pkg/props"
)

// schemaCache holds compiled schemas per struct type. Entries are built
// at most once per type and never replaced, so concurrent construction
// of objects over the same struct type stays cheap.
type schemaCache struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*props.CompiledSchema
}

var cache = &schemaCache{
	entries: make(map[reflect.Type]*props.CompiledSchema),
}

// getOrCreate returns the cached schema for a type, building it with the
// factory if absent. The factory is called at most once per type, even
// under concurrent access; failed builds are not cached.
func (c *schemaCache) getOrCreate(rt reflect.Type, build func() (*props.CompiledSchema, error)) (*props.CompiledSchema, error) {
	// Fast path: already built.
	c.mu.RLock()
	cs, ok := c.entries[rt]
	c.mu.RUnlock()
	if ok {
		return cs, nil
	}

	// Slow path: build under write lock.
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock.
	if cs, ok := c.entries[rt]; ok {
		return cs, nil
	}

	cs, err := build()
	if err != nil {
		return nil, err
	}
	c.entries[rt] = cs
	return cs, nil
}

// reset clears the cache. Test hook.
func (c *schemaCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[reflect.Type]*props.CompiledSchema)
}
