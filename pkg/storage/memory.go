package storage

import (
	"bytes"
	"sync"
)

// Memory is an in-process Backend. A positive MaxBytes bounds the total size of
// stored keys and values, the same way a browser caps its local storage.
type Memory struct {
	mu       sync.Mutex
	data     map[string][]byte
	maxBytes int64
}

var _ Backend = (*Memory)(nil)

// NewMemory creates an empty Memory backend. maxBytes <= 0 means unlimited.
func NewMemory(maxBytes int64) *Memory {
	return &Memory{data: make(map[string][]byte), maxBytes: maxBytes}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

// Put stores a copy of value under key.
func (m *Memory) Put(key string, value []byte) error {
	return m.Apply(Put(key, value))
}

// Remove deletes key.
func (m *Memory) Remove(key string) error {
	return m.Apply(Remove(key))
}

// Apply checks the quota against the final state before touching the map.
func (m *Memory) Apply(ops ...Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxBytes > 0 {
		final := make(map[string][]byte, len(ops))
		for _, op := range ops {
			final[op.Key] = op.Value
		}
		size := m.size()
		for key, value := range final {
			if old, ok := m.data[key]; ok {
				size -= int64(len(key) + len(old))
			}
			if value != nil {
				size += int64(len(key) + len(value))
			}
		}
		if size > m.maxBytes {
			return ErrQuotaExceeded
		}
	}

	for _, op := range ops {
		if op.Value == nil {
			delete(m.data, op.Key)
			continue
		}
		m.data[op.Key] = bytes.Clone(op.Value)
	}
	return nil
}

// Keys returns the number of stored keys.
func (m *Memory) Keys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

func (m *Memory) size() int64 {
	var n int64
	for k, v := range m.data {
		n += int64(len(k) + len(v))
	}
	return n
}
