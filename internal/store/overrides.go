// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"db3dgallery/internal/durable"
	"db3dgallery/internal/models"
)

// OverrideStore maps asset ids and reserved keys to replacement media.
type OverrideStore struct {
	mu      sync.RWMutex
	backend durable.Store
	entries models.OverrideMap
}

// LoadOverrides restores the override map from durable storage. A missing,
// unreadable or malformed snapshot is logged and yields an empty map.
func LoadOverrides(ctx context.Context, backend durable.Store) *OverrideStore {
	s := &OverrideStore{
		backend: backend,
		entries: make(models.OverrideMap),
	}

	raw, ok, err := backend.Get(ctx, durable.KeyOverrides)
	if err != nil {
		slog.Error("failed to read overrides", "error", err)
		return s
	}
	if !ok {
		return s
	}

	var loaded models.OverrideMap
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		slog.Error("failed to parse overrides", "error", err)
		return s
	}
	if loaded != nil {
		s.entries = loaded
	}

	slog.Info("overrides loaded", "count", len(s.entries))
	return s
}

// Get returns the payload for key, if any.
func (s *OverrideStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// All returns a copy of every override.
func (s *OverrideStore) All() models.OverrideMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Clone()
}

// Len returns the number of overrides.
func (s *OverrideStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Set stores payload under key. The in-memory value is always updated; a
// failed durable write is returned wrapped in ErrNotPersisted.
func (s *OverrideStore) Set(ctx context.Context, key, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = payload
	if err := s.persist(ctx); err != nil {
		slog.Warn("override kept in memory only", "key", key, "error", err)
		return notPersisted(err)
	}
	return nil
}

// Remove prunes key. It reports whether an entry was removed. Durable write
// failures are logged and otherwise ignored: the value is already gone from
// memory.
func (s *OverrideStore) Remove(ctx context.Context, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	if err := s.persist(ctx); err != nil {
		slog.Warn("override removal not persisted", "key", key, "error", err)
	}
	return true
}

// Clear empties the map and deletes the durable snapshot.
func (s *OverrideStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(models.OverrideMap)
	if err := s.backend.Remove(ctx, durable.KeyOverrides); err != nil {
		return fmt.Errorf("clear overrides: %w", err)
	}
	return nil
}

// persist writes the whole map. Callers hold s.mu.
func (s *OverrideStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("marshal overrides: %w", err)
	}
	return s.backend.Set(ctx, durable.KeyOverrides, string(raw))
}
