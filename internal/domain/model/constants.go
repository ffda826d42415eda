package model

// 地域タグの定数
const (
	RegionAll       = "all"
	RegionWest      = "west"
	RegionEast      = "east"
	RegionNorth     = "north"
	RegionSouth     = "south"
	RegionMeghalaya = "meghalaya"
	RegionManipur   = "manipur"
)

// カテゴリの定数
const (
	CategoryMonument = "monument"
	CategoryPalace   = "palace"
	CategoryFort     = "fort"
	CategoryTemple   = "temple"
	CategoryNature   = "nature"
	CategoryBeach    = "beach"
	CategoryCity     = "city"
	CategoryCave     = "cave"
	CategoryMemorial = "memorial"
	CategoryRuins    = "ruins"
	CategoryVillage  = "village"
)

// カバレッジエリアの種別
const (
	AreaTypeTourist  = "tourist-area"
	AreaTypeBuffer   = "buffer-area"
	AreaTypeState    = "state-area"
	AreaTypeGeofence = "geofence"
)

// DensityClass 観光密度の分類
type DensityClass string

const (
	DensityHigh     DensityClass = "high"
	DensityMedium   DensityClass = "medium"
	DensityLow      DensityClass = "low"
	DensityInactive DensityClass = "inactive"
)

// DensityThresholds 密度分類のしきい値（下限値, 以上で判定）
type DensityThresholds struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// DefaultDensityThresholds 8以上=high, 4-7=medium, 1-3=low, 0=inactive
func DefaultDensityThresholds() DensityThresholds {
	return DensityThresholds{High: 8, Medium: 4, Low: 1}
}

// Classify 密度から分類を判定する
func (t DensityThresholds) Classify(density int) DensityClass {
	switch {
	case density >= t.High:
		return DensityHigh
	case density >= t.Medium:
		return DensityMedium
	case density >= t.Low:
		return DensityLow
	default:
		return DensityInactive
	}
}

// DensityColors 分類ごとの表示色
type DensityColors map[DensityClass]string

// DefaultDensityColors 元の地図UIと同じ配色
func DefaultDensityColors() DensityColors {
	return DensityColors{
		DensityHigh:     "#ff4757",
		DensityMedium:   "#ffa502",
		DensityLow:      "#2ed573",
		DensityInactive: "#ddd",
	}
}

// Color 分類の色を取得する
func (c DensityColors) Color(class DensityClass) string {
	if color, ok := c[class]; ok {
		return color
	}
	return c[DensityInactive]
}

// DefaultCategoryColors カテゴリ別のマーカー色
func DefaultCategoryColors() map[string]string {
	return map[string]string{
		CategoryMonument: "#e74c3c",
		CategoryPalace:   "#9b59b6",
		CategoryFort:     "#f39c12",
		CategoryTemple:   "#27ae60",
		CategoryNature:   "#2ecc71",
		CategoryBeach:    "#3498db",
		CategoryCity:     "#34495e",
		CategoryCave:     "#8e44ad",
		CategoryMemorial: "#e67e22",
		CategoryRuins:    "#95a5a6",
	}
}

// DefaultRegionColors 地域別の色
func DefaultRegionColors() map[string]string {
	return map[string]string{
		RegionNorth:     "#3498db",
		RegionSouth:     "#e74c3c",
		RegionEast:      "#27ae60",
		RegionWest:      "#f39c12",
		RegionMeghalaya: "#8e44ad",
	}
}

const (
	// DefaultAreaColor カテゴリ色が無い場合のエリア色
	DefaultAreaColor = "#e67e22"
	// DefaultBufferColor バッファゾーンの色
	DefaultBufferColor = "#3498db"
	// DefaultStateAreaColor 州境界エリアの色
	DefaultStateAreaColor = "#d35400"
	// DefaultRegionColor 未定義地域の色
	DefaultRegionColor = "#95a5a6"
)
