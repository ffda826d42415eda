package model

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// CoverageArea スポット1件ごとの円形エリアまたはバッファゾーン
type CoverageArea struct {
	Type             string      `json:"type"` // tourist-area | buffer-area
	Geometry         orb.Polygon `json:"geometry"`
	SpotID           int         `json:"spot_id"`
	Name             string      `json:"name"`
	Category         string      `json:"category"`
	Rating           float64     `json:"rating"`
	Description      string      `json:"description"`
	Region           string      `json:"region"`
	Center           Coordinate  `json:"center"`
	AreaKm2          float64     `json:"area"` // 小数第2位で丸め
	RadiusKm         float64     `json:"radius,omitempty"`
	BufferDistanceKm float64     `json:"buffer_distance,omitempty"`
	Color            string      `json:"color"`
}

// ToFeature GeoJSON Feature に変換
func (a *CoverageArea) ToFeature() *geojson.Feature {
	f := geojson.NewFeature(a.Geometry)
	f.ID = a.SpotID
	f.Properties["type"] = a.Type
	f.Properties["name"] = a.Name
	f.Properties["category"] = a.Category
	f.Properties["rating"] = a.Rating
	f.Properties["description"] = a.Description
	f.Properties["region"] = a.Region
	f.Properties["area"] = a.AreaKm2
	f.Properties["color"] = a.Color
	if a.RadiusKm > 0 {
		f.Properties["radius"] = a.RadiusKm
	}
	if a.BufferDistanceKm > 0 {
		f.Properties["bufferDistance"] = a.BufferDistanceKm
	}
	return f
}

// CoverageAreaCollection エリアの一覧と集計
type CoverageAreaCollection struct {
	Features             []*CoverageArea `json:"features"`
	TotalAreaKm2         float64         `json:"total_area"`
	AverageAreaKm2       float64         `json:"average_area"`
	CategoryDistribution map[string]int  `json:"category_distribution"`
	FailedSpots          int             `json:"failed_spots"` // 生成に失敗したスポット数
}

// NewCoverageAreaCollection エリア一覧から集計値を計算して作成
func NewCoverageAreaCollection(areas []*CoverageArea, failed int) *CoverageAreaCollection {
	c := &CoverageAreaCollection{
		Features:             areas,
		CategoryDistribution: make(map[string]int),
		FailedSpots:          failed,
	}
	if c.Features == nil {
		c.Features = []*CoverageArea{}
	}
	for _, a := range areas {
		c.TotalAreaKm2 += a.AreaKm2
		c.CategoryDistribution[a.Category]++
	}
	c.TotalAreaKm2 = RoundTo2(c.TotalAreaKm2)
	if len(areas) > 0 {
		c.AverageAreaKm2 = RoundTo2(c.TotalAreaKm2 / float64(len(areas)))
	}
	return c
}

// ToFeatureCollection GeoJSON に変換
func (c *CoverageAreaCollection) ToFeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, a := range c.Features {
		fc.Append(a.ToFeature())
	}
	return fc
}

// StateArea 州全体の境界エリア
type StateArea struct {
	Name              string      `json:"name"`
	Type              string      `json:"type"`
	Region            string      `json:"region"`
	Geometry          orb.Polygon `json:"geometry"`
	AreaKm2           float64     `json:"area"`
	TouristSpotsCount int         `json:"tourist_spots_count"`
	Color             string      `json:"color"`
}

// ToFeature GeoJSON Feature に変換
func (s *StateArea) ToFeature() *geojson.Feature {
	f := geojson.NewFeature(s.Geometry)
	f.Properties["name"] = s.Name
	f.Properties["type"] = s.Type
	f.Properties["region"] = s.Region
	f.Properties["area"] = s.AreaKm2
	f.Properties["touristSpotsCount"] = s.TouristSpotsCount
	f.Properties["color"] = s.Color
	return f
}

// CoverageReport 1地域分のカバレッジ計算結果
type CoverageReport struct {
	Region           string                  `json:"region"`
	RadiusKm         float64                 `json:"radius"`
	BufferDistanceKm float64                 `json:"buffer_distance"`
	TouristAreas     *CoverageAreaCollection `json:"tourist_areas"`
	BufferAreas      *CoverageAreaCollection `json:"buffer_areas"`
	StateArea        *StateArea              `json:"state_area,omitempty"`
}
