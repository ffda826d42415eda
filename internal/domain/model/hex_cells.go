package model

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// HexCellID 生成順のインデックスからセルIDを作る（例: "hex-0"）
func HexCellID(index int) string {
	return fmt.Sprintf("hex-%d", index)
}

// HexCellIndex セルIDから生成順のインデックスを取り出す
func HexCellIndex(id string) (int, bool) {
	var index int
	if _, err := fmt.Sscanf(id, "hex-%d", &index); err != nil {
		return 0, false
	}
	return index, true
}

// HexCell 六角形グリッドの1セル
type HexCell struct {
	ID         string            `json:"id"`         // 生成順の識別子（グリッド内で一意）
	Geometry   orb.Polygon       `json:"geometry"`   // 閉じたリング
	Properties HexCellProperties `json:"properties"` // 密度などの属性
}

// HexCellProperties セルに付与する属性
type HexCellProperties struct {
	Density      int          `json:"density"`
	Color        string       `json:"color"`
	DensityClass DensityClass `json:"density_class"`
	Centroid     Coordinate   `json:"centroid"`
	BBox         BoundingBox  `json:"bbox"`
	TouristCount int          `json:"tourist_count"`
	AreaKm2      float64      `json:"area"` // km²
	IsActive     bool         `json:"is_active"`
	Region       string       `json:"region"`
	State        string       `json:"state,omitempty"`
	IsGeofenced  bool         `json:"is_geofenced,omitempty"`
	H3Index      string       `json:"h3_index,omitempty"` // 重心のH3セル
}

// Clone 深いコピーを返す（ジオメトリも複製）
func (h *HexCell) Clone() *HexCell {
	c := *h
	c.Geometry = h.Geometry.Clone()
	return &c
}

// ToFeature GeoJSON Feature に変換
func (h *HexCell) ToFeature() *geojson.Feature {
	f := geojson.NewFeature(h.Geometry)
	f.ID = h.ID
	p := h.Properties
	f.Properties["density"] = p.Density
	f.Properties["color"] = p.Color
	f.Properties["densityClass"] = string(p.DensityClass)
	f.Properties["centroid"] = p.Centroid
	f.Properties["bbox"] = p.BBox
	f.Properties["touristCount"] = p.TouristCount
	f.Properties["area"] = p.AreaKm2
	f.Properties["isActive"] = p.IsActive
	f.Properties["region"] = p.Region
	if p.State != "" {
		f.Properties["state"] = p.State
		f.Properties["isGeofenced"] = p.IsGeofenced
	}
	if p.H3Index != "" {
		f.Properties["h3Index"] = p.H3Index
	}
	return f
}

// HexCellsToFeatureCollection セル一覧を FeatureCollection に変換
func HexCellsToFeatureCollection(cells []*HexCell) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range cells {
		fc.Append(c.ToFeature())
	}
	return fc
}

// HexCellRecord hex_cells テーブルの行（Supabase保存用）
type HexCellRecord struct {
	Region       string            `json:"region" db:"region"`
	CellID       string            `json:"cell_id" db:"cell_id"`
	CellSideKm   float64           `json:"cell_side_km" db:"cell_side_km"`
	Geometry     *geojson.Geometry `json:"geometry" db:"geometry"`
	Density      int               `json:"density" db:"density"`
	DensityClass string            `json:"density_class" db:"density_class"`
	Color        string            `json:"color" db:"color"`
	AreaKm2      float64           `json:"area_km2" db:"area_km2"`
	Centroid     []float64         `json:"centroid" db:"centroid"`
	H3Index      string            `json:"h3_index" db:"h3_index"`
	IsActive     bool              `json:"is_active" db:"is_active"`
}

// ToRecord 保存用の行に変換
func (h *HexCell) ToRecord() *HexCellRecord {
	return &HexCellRecord{
		Region:       h.Properties.Region,
		CellID:       h.ID,
		Geometry:     geojson.NewGeometry(h.Geometry),
		Density:      h.Properties.Density,
		DensityClass: string(h.Properties.DensityClass),
		Color:        h.Properties.Color,
		AreaKm2:      h.Properties.AreaKm2,
		Centroid:     []float64{h.Properties.Centroid.Lng(), h.Properties.Centroid.Lat()},
		H3Index:      h.Properties.H3Index,
		IsActive:     h.Properties.IsActive,
	}
}

// ToHexCell 保存済みの行からセルを復元する
func (r *HexCellRecord) ToHexCell(thresholds DensityThresholds) (*HexCell, error) {
	if r.Geometry == nil {
		return nil, fmt.Errorf("セル %s のジオメトリがありません", r.CellID)
	}
	poly, ok := r.Geometry.Geometry().(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("セル %s のジオメトリがPolygonではありません: %s", r.CellID, r.Geometry.Type)
	}
	cell := &HexCell{
		ID:       r.CellID,
		Geometry: poly,
		Properties: HexCellProperties{
			Density:      r.Density,
			Color:        r.Color,
			DensityClass: thresholds.Classify(r.Density),
			BBox:         BoundingBoxFromBound(poly.Bound()),
			TouristCount: r.Density,
			AreaKm2:      r.AreaKm2,
			IsActive:     r.Density > 0,
			Region:       r.Region,
			H3Index:      r.H3Index,
		},
	}
	if len(r.Centroid) >= 2 {
		cell.Properties.Centroid = NewCoordinate(r.Centroid[0], r.Centroid[1])
	}
	return cell, nil
}
