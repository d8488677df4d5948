package kv

import (
	"fmt"
	"sync"
)

// Memory is a process-local Store. Nothing survives the process.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[key] = value
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// quotaStore enforces a per-entry byte budget on writes.
type quotaStore struct {
	Store
	limit int
}

// WithQuota wraps s so that Set rejects any entry whose key plus value is
// larger than limit bytes. A non-positive limit disables the check.
func WithQuota(s Store, limit int) Store {
	if limit <= 0 {
		return s
	}
	return &quotaStore{Store: s, limit: limit}
}

func (q *quotaStore) Set(key, value string) error {
	if n := len(key) + len(value); n > q.limit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrQuotaExceeded, n, q.limit)
	}
	return q.Store.Set(key, value)
}
