package kvstore

import "sync"

// Memory is an in-memory KV implementation for testing.
// It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string

	// SetCalls records every Set invocation in order.
	SetCalls []string
}

// NewMemory creates a new in-memory KV.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.SetCalls = append(m.SetCalls, key)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
