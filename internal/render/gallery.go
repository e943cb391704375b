package render

import (
	"db3dgallery/internal/admin"
	"db3dgallery/internal/models"
)

// GalleryData is the page data of the gallery template.
type GalleryData struct {
	View   *admin.View
	Mains  []models.MainCategory
	Main   models.MainCategory
	Sub    models.SubCategory
	Assets []models.Asset
	Counts map[models.SubCategory]int
}

// NewGalleryData filters the merged view down to one subcategory. An
// unknown main falls back to MATERIALS; a sub that does not belong to main
// falls back to main's first subcategory.
func NewGalleryData(v *admin.View, main models.MainCategory, sub models.SubCategory) *GalleryData {
	main, sub = NormalizeCategory(main, sub)
	return &GalleryData{
		View:   v,
		Mains:  models.MainCategories,
		Main:   main,
		Sub:    sub,
		Assets: v.InCategory(main, sub),
		Counts: v.Count(main),
	}
}

// NormalizeCategory applies the gallery's tab fallbacks to a requested
// category pair.
func NormalizeCategory(main models.MainCategory, sub models.SubCategory) (models.MainCategory, models.SubCategory) {
	if !main.Valid() {
		main = models.MainMaterials
	}
	if !sub.BelongsTo(main) {
		sub = main.DefaultSub()
	}
	return main, sub
}
