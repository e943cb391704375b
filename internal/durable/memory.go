package durable

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Store with the same quota semantics as Valkey.
// It backs STORAGE_BACKEND=memory and the tests of dependent packages.
type Memory struct {
	mu      sync.Mutex
	entries map[string]string
	quota   int64
	failErr error
}

// NewMemory returns an empty store. A quota <= 0 disables the ceiling.
func NewMemory(quota int64) *Memory {
	return &Memory{
		entries: make(map[string]string),
		quota:   quota,
	}
}

// Get returns the value for key and whether it was present.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set writes value under key unless doing so would exceed the quota.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return fmt.Errorf("durable set %s: %w", key, m.failErr)
	}

	var used int64
	for k, v := range m.entries {
		if k != key {
			used += entrySize(k, v)
		}
	}
	if !fits(m.quota, used, entrySize(key, value)) {
		return fmt.Errorf("durable set %s: %w", key, ErrQuotaExceeded)
	}

	m.entries[key] = value
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return fmt.Errorf("durable remove %s: %w", key, m.failErr)
	}
	delete(m.entries, key)
	return nil
}

// Usage returns the bytes currently used.
func (m *Memory) Usage() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var used int64
	for k, v := range m.entries {
		used += entrySize(k, v)
	}
	return used
}

// SetQuota changes the ceiling. Existing entries are kept even if they no
// longer fit.
func (m *Memory) SetQuota(quota int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quota = quota
}

// FailWrites makes every subsequent Set and Remove fail with err. Pass nil to restore
// normal behaviour.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}
