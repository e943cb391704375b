// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package durable provides the origin-scoped string key-value storage that
// admin edits are persisted to. Storage has a hard capacity ceiling: a
// write that would push the namespace over its quota is refused with
// ErrQuotaExceeded and nothing is written.
package durable

import (
	"context"
	"errors"
)

// Storage keys used by the gallery.
const (
	KeyOverrides = "asset_overrides"
	KeyStructure = "assets_structure"
)

// ErrQuotaExceeded is returned by Set when the write would exceed the quota.
var ErrQuotaExceeded = errors.New("durable storage quota exceeded")

// Store is a string key-value store with a capacity ceiling.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes value under key, or fails with ErrQuotaExceeded.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// entrySize is how much of the quota one key/value pair consumes.
func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}

// fits reports whether a namespace currently using used bytes (the entry
// being replaced excluded) can take one more entry of size bytes.
func fits(quota, used, size int64) bool {
	return quota <= 0 || used+size <= quota
}
