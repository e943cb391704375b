// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the compiled-in gallery defaults: the seeded asset
// list and the default media for the site logo and hero video. Everything
// the admin edits at runtime is layered on top of these values and can be
// reset back to them.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"db3dgallery/internal/models"
	"db3dgallery/internal/slug"
)

const (
	// DefaultLogo is shown when no site_logo override exists.
	DefaultLogo = "https://placehold.co/100x100/3e2723/ffffff?text=DB"

	// DefaultHeroVideo is empty: the hero shows an upload prompt instead.
	DefaultHeroVideo = ""

	// brickCount is the number of seeded exterior brick materials.
	brickCount = 62
)

// Defaults is the compiled-in state the gallery starts from and returns to
// on reset.
type Defaults struct {
	Assets    []models.Asset
	Logo      string
	HeroVideo string
}

// Builtin returns the defaults shipped with the site.
func Builtin() Defaults {
	return Defaults{
		Assets:    exteriorBricks(),
		Logo:      DefaultLogo,
		HeroVideo: DefaultHeroVideo,
	}
}

// exteriorBricks generates Brick-DB3D_01 through Brick-DB3D_62.
func exteriorBricks() []models.Asset {
	assets := make([]models.Asset, 0, brickCount)
	for i := 1; i <= brickCount; i++ {
		name := fmt.Sprintf("Brick-DB3D_%02d", i)
		assets = append(assets, models.Asset{
			ID:           slug.Generate(name),
			Title:        name,
			MainCategory: models.MainMaterials,
			SubCategory:  models.SubExterior,
			ImageURL:     "/images/" + name + ".png",
			Description:  "D5 Render Exterior Material",
		})
	}
	return assets
}

// FromExport folds an export document into a Defaults value, the same way
// an editor would paste it into source: overrides keyed by an asset id
// replace that asset's image, and the reserved keys replace the singleton
// slots. Overrides without a matching asset are dropped.
func FromExport(doc *models.ExportDocument) Defaults {
	d := Defaults{
		Assets:    models.CloneAssets(doc.Assets),
		Logo:      doc.Overrides.Resolve(models.KeySiteLogo, DefaultLogo),
		HeroVideo: doc.Overrides.Resolve(models.KeyHeroVideo, DefaultHeroVideo),
	}
	for i := range d.Assets {
		d.Assets[i].ImageURL = doc.Overrides.Resolve(d.Assets[i].ID, d.Assets[i].ImageURL)
	}
	return d
}

// LoadFile reads an export document from path and returns the defaults it
// describes. Every asset must pass validation and ids must be unique.
func LoadFile(path string) (Defaults, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("read defaults file: %w", err)
	}

	var doc models.ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Defaults{}, fmt.Errorf("parse defaults file: %w", err)
	}

	seen := make(map[string]bool, len(doc.Assets))
	for i := range doc.Assets {
		a := &doc.Assets[i]
		if err := a.Validate(); err != nil {
			return Defaults{}, fmt.Errorf("defaults file asset %d: %w", i, err)
		}
		if seen[a.ID] {
			return Defaults{}, fmt.Errorf("defaults file: duplicate asset id %q", a.ID)
		}
		seen[a.ID] = true
	}

	return FromExport(&doc), nil
}
