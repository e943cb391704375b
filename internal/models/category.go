// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// MainCategory is the top-level split of the gallery.
type MainCategory string

const (
	MainMaterials MainCategory = "MATERIALS"
	MainModels    MainCategory = "MODELS"
)

// SubCategory values keep the bilingual labels shown on the site. They are
// also the wire values stored in the structure snapshot and export file.
type SubCategory string

// Materials
const (
	SubWoodFloor  SubCategory = "木地板 (Wood Floor)"
	SubWoodGrain  SubCategory = "木紋 (Wood Grain)"
	SubGlassMetal SubCategory = "玻璃金屬 (Glass & Metal)"
	SubWallPaint  SubCategory = "牆漆塗料 (Wall Paint)"
	SubLeather    SubCategory = "皮革 (Leather)"
	SubFabric     SubCategory = "布料 (Fabric)"
	SubStone      SubCategory = "石紋 (Stone)"
	SubTiles      SubCategory = "磁磚 (Tiles)"
	SubTerrazzo   SubCategory = "水磨石 (Terrazzo)"
	SubExterior   SubCategory = "室外磚+鋪面 (Exterior)"
)

// Models
const (
	SubSofa        SubCategory = "沙發 (Sofa)"
	SubBed         SubCategory = "床 (Bed)"
	SubChair       SubCategory = "單椅 (Chair)"
	SubCoffeeTable SubCategory = "茶几 (Coffee Table)"
	SubTable       SubCategory = "桌子 (Table)"
	SubElectronics SubCategory = "家電3C (Electronics)"
	SubLighting    SubCategory = "燈具 (Lighting)"
	SubTrackLight  SubCategory = "嵌燈軌道燈 (Track Light)"
	SubKitchenware SubCategory = "廚房用品 (Kitchenware)"
	SubPlants      SubCategory = "植栽 (Plants)"
	SubDecor       SubCategory = "擺飾 (Decor)"
	SubBathroom    SubCategory = "衛浴設備 (Bathroom)"
	SubRug         SubCategory = "地毯 (Rug)"
	SubCurtain     SubCategory = "窗簾 (Curtain)"
)

// MainCategories lists the main categories in display order.
var MainCategories = []MainCategory{MainMaterials, MainModels}

// categoryMap declares the closed subcategory set of each main category.
// The first entry is the one selected when the main category is opened.
var categoryMap = map[MainCategory][]SubCategory{
	MainMaterials: {
		SubExterior,
		SubWoodFloor,
		SubWoodGrain,
		SubGlassMetal,
		SubWallPaint,
		SubLeather,
		SubFabric,
		SubStone,
		SubTiles,
		SubTerrazzo,
	},
	MainModels: {
		SubSofa,
		SubBed,
		SubChair,
		SubCoffeeTable,
		SubTable,
		SubElectronics,
		SubLighting,
		SubTrackLight,
		SubKitchenware,
		SubPlants,
		SubDecor,
		SubBathroom,
		SubRug,
		SubCurtain,
	},
}

// Valid reports whether m is one of the declared main categories.
func (m MainCategory) Valid() bool {
	_, ok := categoryMap[m]
	return ok
}

// Label returns the display name of the main category.
func (m MainCategory) Label() string {
	switch m {
	case MainMaterials:
		return "3D 材質"
	case MainModels:
		return "3D 模型"
	default:
		return string(m)
	}
}

// SubCategories returns a copy of the subcategories declared for m, or nil
// if m is not a known main category.
func (m MainCategory) SubCategories() []SubCategory {
	subs, ok := categoryMap[m]
	if !ok {
		return nil
	}
	out := make([]SubCategory, len(subs))
	copy(out, subs)
	return out
}

// DefaultSub returns the subcategory selected when m is opened.
func (m MainCategory) DefaultSub() SubCategory {
	subs := categoryMap[m]
	if len(subs) == 0 {
		return ""
	}
	return subs[0]
}

// BelongsTo reports whether s is declared under the main category m.
func (s SubCategory) BelongsTo(m MainCategory) bool {
	for _, sub := range categoryMap[m] {
		if sub == s {
			return true
		}
	}
	return false
}
