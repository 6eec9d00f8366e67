// Package storagetest provides an in-memory storage.KV for tests.
package storagetest

import (
	"context"
	"sync"
)

type MemoryKV struct {
	mu         sync.Mutex
	data       map[string]string
	shouldFail bool
	failError  error
	writes     int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFail {
		return "", false, m.failError
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFail {
		return m.failError
	}
	m.data[key] = value
	m.writes++
	return nil
}

func (m *MemoryKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFail {
		return m.failError
	}
	delete(m.data, key)
	m.writes++
	return nil
}

func (m *MemoryKV) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFail {
		return m.failError
	}
	return nil
}

func (m *MemoryKV) Close() error { return nil }

// Helper methods for testing

func (m *MemoryKV) SetShouldFail(shouldFail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shouldFail = shouldFail
	m.failError = err
}

// Raw returns the stored value of key.
func (m *MemoryKV) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	return v, ok
}

// Put stores a raw value without counting it as a write.
func (m *MemoryKV) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
}

func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.writes
}
