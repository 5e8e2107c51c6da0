package prefs

import "sync"

// Memory keeps values for the life of the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]map[string]string)}
}

func (m *Memory) Get(owner, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[owner][key]
	return v, ok, nil
}

func (m *Memory) Put(owner, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[owner] == nil {
		m.values[owner] = make(map[string]string)
	}
	m.values[owner][key] = value
	return nil
}
