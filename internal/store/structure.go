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

// StructureStore is the mutable, ordered asset catalog. Every mutation
// rewrites the entire sequence to durable storage.
type StructureStore struct {
	mu       sync.RWMutex
	backend  durable.Store
	defaults []models.Asset
	assets   []models.Asset
}

// LoadStructure restores the catalog from durable storage, falling back to
// defaults when no snapshot exists or it cannot be read or parsed.
func LoadStructure(ctx context.Context, backend durable.Store, defaults []models.Asset) *StructureStore {
	s := &StructureStore{
		backend:  backend,
		defaults: models.CloneAssets(defaults),
		assets:   models.CloneAssets(defaults),
	}

	raw, ok, err := backend.Get(ctx, durable.KeyStructure)
	if err != nil {
		slog.Error("failed to read asset structure", "error", err)
		return s
	}
	if !ok {
		return s
	}

	var loaded []models.Asset
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		slog.Error("failed to parse asset structure", "error", err)
		return s
	}
	if loaded == nil {
		slog.Error("failed to parse asset structure", "error", "snapshot is null")
		return s
	}

	s.assets = loaded
	slog.Info("asset structure loaded", "count", len(loaded), "defaults", len(defaults))
	return s
}

// Assets returns a copy of the current sequence.
func (s *StructureStore) Assets() []models.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneAssets(s.assets)
}

// Len returns the number of assets.
func (s *StructureStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}

// Find returns the asset with the given id.
func (s *StructureStore) Find(id string) (models.Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.assets[i], true
	}
	return models.Asset{}, false
}

// HasStructureChanges reports whether the current length differs from the
// default catalog's length. Same-length edits are not detected.
func (s *StructureStore) HasStructureChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets) != len(s.defaults)
}

// Append adds a to the end of the catalog.
func (s *StructureStore) Append(ctx context.Context, a models.Asset) error {
	return s.BatchAppend(ctx, []models.Asset{a})
}

// BatchAppend adds every asset in order, as one mutation. Ids must be new
// and unique within the batch; otherwise nothing is appended.
func (s *StructureStore) BatchAppend(ctx context.Context, batch []models.Asset) error {
	if len(batch) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(batch))
	for _, a := range batch {
		if seen[a.ID] || s.indexOf(a.ID) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateID, a.ID)
		}
		seen[a.ID] = true
	}

	s.assets = append(s.assets, batch...)
	if err := s.persist(ctx); err != nil {
		slog.Warn("asset structure kept in memory only", "added", len(batch), "total", len(s.assets), "error", err)
		return notPersisted(err)
	}
	return nil
}

// Remove deletes the asset with the given id. It reports whether the asset
// existed; a failed durable write is returned wrapped in ErrNotPersisted.
func (s *StructureStore) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]models.Asset, 0, len(s.assets)-1)
	next = append(next, s.assets[:i]...)
	next = append(next, s.assets[i+1:]...)
	s.assets = next

	if err := s.persist(ctx); err != nil {
		slog.Warn("asset removal kept in memory only", "id", id, "error", err)
		return true, notPersisted(err)
	}
	return true, nil
}

// Reset restores the defaults and deletes the durable snapshot.
func (s *StructureStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assets = models.CloneAssets(s.defaults)
	if err := s.backend.Remove(ctx, durable.KeyStructure); err != nil {
		return fmt.Errorf("reset structure: %w", err)
	}
	return nil
}

// indexOf returns the position of id, or -1. Callers hold s.mu.
func (s *StructureStore) indexOf(id string) int {
	for i := range s.assets {
		if s.assets[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole sequence. Callers hold s.mu.
func (s *StructureStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.assets)
	if err != nil {
		return fmt.Errorf("marshal structure: %w", err)
	}
	return s.backend.Set(ctx, durable.KeyStructure, string(raw))
}
