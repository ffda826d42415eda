package model

import (
	"fmt"
	"time"
)

// RegionConfig 地域ごとのグリッド設定
type RegionConfig struct {
	Name       string      `json:"name"`
	State      string      `json:"state,omitempty"` // 州名（州単位の地域のみ）
	BBox       BoundingBox `json:"bbox"`
	CellSideKm float64     `json:"cell_side_km"`
	Geofenced  bool        `json:"geofenced"` // ジオフェンス生成対象か
}

// GeoConfig 集計処理に渡す地理設定
type GeoConfig struct {
	// IndiaRegions インド全体グリッドを構成する地域（生成順）
	IndiaRegions []RegionConfig
	// IndiaBounds インド全体の境界ボックス
	IndiaBounds BoundingBox
	// StateRegions 州単位の地域（meghalaya, manipur）
	StateRegions []RegionConfig

	Thresholds     DensityThresholds
	DensityColors  DensityColors
	CategoryColors map[string]string
	RegionColors   map[string]string

	// CircleSteps 円ポリゴンの頂点数
	CircleSteps int
	// BufferSteps バッファの四分円あたりの頂点数
	BufferSteps int
	// H3Resolution セル中心に付与するH3インデックスの解像度
	H3Resolution int

	DefaultRadiusKm         float64
	DefaultBufferDistanceKm float64
	DefaultMinDensity       int

	// NotificationAutoDismiss 低優先度通知の自動非表示までの時間
	NotificationAutoDismiss time.Duration
}

// DefaultGeoConfig 既定の地理設定
func DefaultGeoConfig() *GeoConfig {
	return &GeoConfig{
		IndiaRegions: []RegionConfig{
			{Name: RegionWest, BBox: BoundingBox{68, 15, 78, 28}, CellSideKm: 50},
			{Name: RegionEast, BBox: BoundingBox{85, 18, 97, 28}, CellSideKm: 50},
			{Name: RegionNorth, BBox: BoundingBox{74, 28, 80, 37}, CellSideKm: 50},
			{Name: RegionSouth, BBox: BoundingBox{74, 6, 80, 20}, CellSideKm: 50},
		},
		IndiaBounds: BoundingBox{68, 6, 97, 37},
		StateRegions: []RegionConfig{
			{Name: RegionMeghalaya, State: "Meghalaya", BBox: BoundingBox{89.61, 24.58, 92.51, 26.07}, CellSideKm: 10, Geofenced: true},
			{Name: RegionManipur, State: "Manipur", BBox: BoundingBox{93.73, 23.83, 94.78, 25.68}, CellSideKm: 10},
		},
		Thresholds:              DefaultDensityThresholds(),
		DensityColors:           DefaultDensityColors(),
		CategoryColors:          DefaultCategoryColors(),
		RegionColors:            DefaultRegionColors(),
		CircleSteps:             64,
		BufferSteps:             8,
		H3Resolution:            5,
		DefaultRadiusKm:         15,
		DefaultBufferDistanceKm: 20,
		DefaultMinDensity:       1,
		NotificationAutoDismiss: 10 * time.Second,
	}
}

// Region 地域名から設定を取得する（インド地域→州の順に検索）
func (c *GeoConfig) Region(name string) (RegionConfig, error) {
	for _, r := range c.IndiaRegions {
		if r.Name == name {
			return r, nil
		}
	}
	for _, r := range c.StateRegions {
		if r.Name == name {
			return r, nil
		}
	}
	return RegionConfig{}, fmt.Errorf("%w: 地域 '%s' は設定されていません", ErrUnknownRegion, name)
}

// RegionNames インド地域名を生成順で返す
func (c *GeoConfig) RegionNames() []string {
	names := make([]string, 0, len(c.IndiaRegions))
	for _, r := range c.IndiaRegions {
		names = append(names, r.Name)
	}
	return names
}

// CategoryColor カテゴリ色を取得する（未定義は既定のエリア色）
func (c *GeoConfig) CategoryColor(category string) string {
	if color, ok := c.CategoryColors[category]; ok {
		return color
	}
	return DefaultAreaColor
}

// RegionColor 地域色を取得する
func (c *GeoConfig) RegionColor(region string) string {
	if color, ok := c.RegionColors[region]; ok {
		return color
	}
	return DefaultRegionColor
}
