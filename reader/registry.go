package reader

import (
	"fmt"
	"sort"
	"sync"
)

// Priorities used by the bundled backends. Lower values are tried first.
const (
	PriorityPlainRaw = 10
	PriorityStandard = 20
	PrioritySensor   = 30
)

type entry struct {
	reader   Reader
	priority int
}

// Registry manages the available readers in priority order
type Registry struct {
	mu       sync.RWMutex
	entries  []entry
	fallback Reader
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// Default returns the registry the bundled backends register with
func Default() *Registry {
	return defaultRegistry
}

// Register adds a reader to the default registry
func Register(r Reader, priority int) {
	defaultRegistry.Register(r, priority)
}

// SetFallback sets the fallback reader of the default registry
func SetFallback(r Reader) {
	defaultRegistry.SetFallback(r)
}

// Select picks a reader for path from the default registry
func Select(path string) (Reader, error) {
	return defaultRegistry.Select(path)
}

// Get retrieves a reader of the default registry by name
func Get(name string) (Reader, error) {
	return defaultRegistry.Get(name)
}

// Read selects a reader from the default registry and decodes path
func Read(path string, params *ReadParameters) (*Image, error) {
	return defaultRegistry.Read(path, params)
}

// List returns the readers of the default registry in priority order
func List() []Reader {
	return defaultRegistry.List()
}

// Register adds r at the given priority. A reader with the same name is
// replaced. Readers with equal priority keep registration order.
func (reg *Registry) Register(r Reader, priority int) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for i, e := range reg.entries {
		if e.reader.Name() == r.Name() {
			reg.entries = append(reg.entries[:i], reg.entries[i+1:]...)
			break
		}
	}
	reg.entries = append(reg.entries, entry{reader: r, priority: priority})
	sort.SliceStable(reg.entries, func(i, j int) bool {
		return reg.entries[i].priority < reg.entries[j].priority
	})
}

// SetFallback sets the reader used when no registered reader claims a file.
// It is given the file even though its CanRead was not consulted.
func (reg *Registry) SetFallback(r Reader) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.fallback = r
}

// Select returns the first reader whose CanRead accepts path, else the
// fallback.
func (reg *Registry) Select(path string) (Reader, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	for _, e := range reg.entries {
		if e.reader.CanRead(path) {
			return e.reader, nil
		}
	}
	if reg.fallback != nil {
		return reg.fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoReader, path)
}

// Get retrieves a reader by name
func (reg *Registry) Get(name string) (Reader, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	for _, e := range reg.entries {
		if e.reader.Name() == name {
			return e.reader, nil
		}
	}
	if reg.fallback != nil && reg.fallback.Name() == name {
		return reg.fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrReaderNotFound, name)
}

// Read selects a reader for path and decodes it
func (reg *Registry) Read(path string, params *ReadParameters) (*Image, error) {
	r, err := reg.Select(path)
	if err != nil {
		return nil, err
	}
	p, err := resolve(params)
	if err != nil {
		return nil, err
	}
	img, err := r.Read(path, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Name(), err)
	}
	return img, nil
}

// List returns all registered readers in priority order
func (reg *Registry) List() []Reader {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	readers := make([]Reader, 0, len(reg.entries))
	for _, e := range reg.entries {
		readers = append(readers, e.reader)
	}
	return readers
}
