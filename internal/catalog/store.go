package catalog

import (
	"sync"
)

// Store caches one loaded Catalog and reloads it only after Invalidate.
// Filtering and rendering work on the cached snapshot and never touch the
// filesystem. All methods are safe for concurrent use.
type Store struct {
	root string
	opts Options

	mu      sync.RWMutex
	current *Catalog
}

// NewStore creates a store for the content directory root. Nothing is read
// until the first Get.
func NewStore(root string, opts Options) *Store {
	return &Store{root: root, opts: opts}
}

// Root returns the content directory.
func (s *Store) Root() string {
	return s.root
}

// Get returns the cached catalog, loading it if needed. A failed load is not
// cached, so the next Get tries once more.
func (s *Store) Get() (*Catalog, error) {
	// Fast path: read lock
	s.mu.RLock()
	c := s.current
	s.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if s.current != nil {
		return s.current, nil
	}

	c, err := Load(s.root, s.opts)
	if err != nil {
		return nil, err
	}
	s.current = c
	return c, nil
}

// Invalidate drops the cached catalog.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.opts.logger().Debug("catalog invalidated", "root", s.root)
}

// Reload invalidates the cache and loads the catalog again.
func (s *Store) Reload() (*Catalog, error) {
	s.Invalidate()
	return s.Get()
}
