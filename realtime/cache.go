package realtime

import "sync"

// StaleSet is a minimal Invalidator: it tracks which collection keys
// have been marked stale since they were last reset. The surrounding
// application's data layer checks IsStale before serving a cached read.
type StaleSet struct {
	mu    sync.Mutex
	stale map[string]struct{}
}

func NewStaleSet() *StaleSet {
	return &StaleSet{stale: make(map[string]struct{})}
}

// Invalidate marks key stale. Marking an already stale key is a no-op.
func (s *StaleSet) Invalidate(key string) {
	s.mu.Lock()
	s.stale[key] = struct{}{}
	s.mu.Unlock()
}

// IsStale reports whether key has been invalidated since its last Reset.
func (s *StaleSet) IsStale(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.stale[key]
	return ok
}

// Reset clears the stale mark for key, typically after a refetch.
func (s *StaleSet) Reset(key string) {
	s.mu.Lock()
	delete(s.stale, key)
	s.mu.Unlock()
}
