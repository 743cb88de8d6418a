package prefs

import "sync"

// MemoryEngine keeps values in process memory. It is safe for concurrent use.
type MemoryEngine struct {
	mu   sync.RWMutex
	vals map[string]string
}

// NewMemoryEngine creates an empty in-memory engine.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{vals: make(map[string]string)}
}

func (m *MemoryEngine) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	return v, ok, nil
}

func (m *MemoryEngine) Put(key, val string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = val
	return nil
}

func (m *MemoryEngine) Close() error {
	return nil
}
