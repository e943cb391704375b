// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives stable asset ids from asset file names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// separators are turned into hyphens.
	separators = regexp.MustCompile(`[\s_.]+`)
	// disallowed matches anything that isn't a letter, digit or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate turns an asset name into an id.
// Example: "Brick-DB3D_01" → "brick-db3d-01"
func Generate(name string) string {
	result := strings.ToLower(strings.TrimSpace(name))
	result = separators.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
