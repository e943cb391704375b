// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
)

// MediaClass groups media slots that share an advisory size threshold and
// a set of accepted content types.
type MediaClass string

const (
	MediaImage MediaClass = "image"
	MediaLogo  MediaClass = "logo"
	MediaVideo MediaClass = "video"
)

const (
	kb = 1024
	mb = 1024 * kb
)

// ClassifyKey returns the media class of an override key.
func ClassifyKey(key string) MediaClass {
	switch key {
	case KeySiteLogo:
		return MediaLogo
	case KeyHeroVideo:
		return MediaVideo
	default:
		return MediaImage
	}
}

// Threshold returns the advisory size limit in bytes. Files above it are
// still accepted but may not fit into durable storage.
func (c MediaClass) Threshold() int64 {
	switch c {
	case MediaLogo:
		return 2 * mb
	case MediaVideo:
		return 5 * mb
	default:
		return 3 * mb
	}
}

// Oversize reports whether a file of size bytes exceeds the class threshold.
func (c MediaClass) Oversize(size int64) bool {
	return size > c.Threshold()
}

// Accepts reports whether the sniffed content type is allowed for the class.
func (c MediaClass) Accepts(contentType string) bool {
	switch c {
	case MediaVideo:
		return contentType == "video/mp4" || contentType == "video/webm"
	default:
		return IsImageType(contentType)
	}
}

// IsImageType returns true for "image/..." content types.
func IsImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// HumanSize returns a human-readable file size string.
func HumanSize(n int64) string {
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.0f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
