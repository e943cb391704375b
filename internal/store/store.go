// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the two pieces of mutable gallery state: the media
// overrides and the asset structure. Both keep memory authoritative and
// write a full JSON snapshot through to durable storage after every change.
// A failed write never rolls back the in-memory change; it is reported as
// ErrNotPersisted so the caller can warn that the edit may not survive a
// restart.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPersisted wraps a durable write failure after memory was updated.
	ErrNotPersisted = errors.New("change applied but not persisted")

	// ErrDuplicateID is returned when an appended asset reuses an existing id.
	ErrDuplicateID = errors.New("duplicate asset id")
)

// notPersisted wraps a durable error so both ErrNotPersisted and the cause
// can be matched with errors.Is.
func notPersisted(err error) error {
	return fmt.Errorf("%w: %w", ErrNotPersisted, err)
}
