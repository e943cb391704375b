package admin

import (
	"context"

	"db3dgallery/internal/metrics"
	"db3dgallery/internal/models"
)

// View is the merged gallery state the presentation renders: the catalog
// with overrides applied, plus the singleton media slots.
type View struct {
	Assets              []models.Asset
	Logo                string
	HeroVideo           string
	OverrideCount       int
	HasStructureChanges bool

	// Generation is the engine generation the view was built from.
	Generation uint64
}

// View returns the merged view. An asset's image is its override when one
// exists, otherwise its catalog image.
func (e *Engine) View() *View {
	e.mu.Lock()
	defer e.mu.Unlock()

	overrides := e.overrides.All()
	assets := e.structure.Assets()
	for i := range assets {
		assets[i].ImageURL = overrides.Resolve(assets[i].ID, assets[i].ImageURL)
	}

	return &View{
		Assets:              assets,
		Logo:                overrides.Resolve(models.KeySiteLogo, e.defaults.Logo),
		HeroVideo:           overrides.Resolve(models.KeyHeroVideo, e.defaults.HeroVideo),
		OverrideCount:       len(overrides),
		HasStructureChanges: e.structure.HasStructureChanges(),
		Generation:          e.generation.Load(),
	}
}

// InCategory returns the assets of one subcategory, in catalog order.
func (v *View) InCategory(main models.MainCategory, sub models.SubCategory) []models.Asset {
	var out []models.Asset
	for _, a := range v.Assets {
		if a.MainCategory == main && a.SubCategory == sub {
			out = append(out, a)
		}
	}
	return out
}

// Count returns the number of assets in each subcategory of main.
func (v *View) Count(main models.MainCategory) map[models.SubCategory]int {
	out := make(map[models.SubCategory]int)
	for _, a := range v.Assets {
		if a.MainCategory == main {
			out[a.SubCategory]++
		}
	}
	return out
}

// Snapshot reports catalog and override sizes for the metrics collector.
func (e *Engine) Snapshot(_ context.Context) metrics.Snapshot {
	return metrics.Snapshot{
		Assets:    e.structure.Len(),
		Overrides: e.overrides.Len(),
	}
}
