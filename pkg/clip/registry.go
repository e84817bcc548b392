package clip

import (
	"errors"
	"sort"
	"sync"
)

// Registry is an identifier-keyed lookup table for clips. Curves and clips
// carry no back-pointer to whatever aggregate plays them; drivers resolve
// clips by name instead, so a clip's lifetime stays independent of its
// consumers. Lookup is safe for concurrent use; the clips themselves are
// not.
type Registry struct {
	mu    sync.RWMutex
	clips map[string]*Clip
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{clips: make(map[string]*Clip)}
}

// Register adds a clip under its name, replacing any previous entry.
func (r *Registry) Register(c *Clip) error {
	if c == nil || c.Name() == "" {
		return errors.New("clip must have a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clips[c.Name()] = c
	return nil
}

// Lookup resolves a clip by name.
func (r *Registry) Lookup(name string) (*Clip, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clips[name]
	return c, ok
}

// Remove drops the named clip from the registry. The clip itself is
// untouched; the registry never controls lifetime.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clips, name)
}

// Names returns the registered clip names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clips))
	for name := range r.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
