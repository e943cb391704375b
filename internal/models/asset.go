// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Reserved override keys for the singleton media slots that are not part of
// the catalog.
const (
	KeySiteLogo  = "site_logo"
	KeyHeroVideo = "hero_video"
)

// ErrInvalidCategory is returned when a main/sub category pair is not part
// of the declared category map.
var ErrInvalidCategory = errors.New("invalid category")

// Asset is a single gallery item. ImageURL is either a plain URL or an
// embedded data URI.
type Asset struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	MainCategory MainCategory `json:"mainCategory"`
	SubCategory  SubCategory  `json:"subCategory"`
	ImageURL     string       `json:"imageUrl"`
	Description  string       `json:"description,omitempty"`
}

// Validate checks the id and the category pair.
func (a *Asset) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("asset id is required")
	}
	return ValidateCategory(a.MainCategory, a.SubCategory)
}

// ValidateCategory returns ErrInvalidCategory unless sub belongs to main.
func ValidateCategory(main MainCategory, sub SubCategory) error {
	if !main.Valid() {
		return fmt.Errorf("%w: unknown main category %q", ErrInvalidCategory, main)
	}
	if !sub.BelongsTo(main) {
		return fmt.Errorf("%w: %q is not a subcategory of %s", ErrInvalidCategory, sub, main)
	}
	return nil
}

// IsReservedKey reports whether key addresses a singleton media slot.
func IsReservedKey(key string) bool {
	return key == KeySiteLogo || key == KeyHeroVideo
}

// OverrideMap maps an asset id or reserved key to a replacement media payload.
type OverrideMap map[string]string

// Clone returns an independent copy of m. A nil map clones to an empty one.
func (m OverrideMap) Clone() OverrideMap {
	out := make(OverrideMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Resolve returns the override for key if one is present and non-empty,
// otherwise fallback.
func (m OverrideMap) Resolve(key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}

// CloneAssets returns an independent copy of assets.
func CloneAssets(assets []Asset) []Asset {
	out := make([]Asset, len(assets))
	copy(out, assets)
	return out
}
