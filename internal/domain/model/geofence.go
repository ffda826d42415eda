package model

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Geofence 密度しきい値以上のセルを結合した1つのポリゴン
type Geofence struct {
	Name              string           `json:"name"`
	Type              string           `json:"type"`
	Region            string           `json:"region"`
	Geometry          orb.MultiPolygon `json:"geometry"`
	HexagonCount      int              `json:"hexagon_count"`       // 選択されたセル数
	MinDensity        int              `json:"min_density"`         // 使用したしきい値
	TotalTouristSpots int              `json:"total_tourist_spots"` // 選択セルの密度合計
	SkippedHexagons   int              `json:"skipped_hexagons"`    // 結合に失敗して除外したセル数
	AreaKm2           float64          `json:"area_km2"`
}

// GeofenceCollection ジオフェンス結果（0件または1件）
type GeofenceCollection struct {
	Features []*Geofence `json:"features"`
}

// EmptyGeofenceCollection 空の結果
func EmptyGeofenceCollection() *GeofenceCollection {
	return &GeofenceCollection{Features: []*Geofence{}}
}

// IsEmpty 結果が空か
func (g *GeofenceCollection) IsEmpty() bool {
	return g == nil || len(g.Features) == 0
}

// First 先頭のジオフェンスを返す（空ならnil）
func (g *GeofenceCollection) First() *Geofence {
	if g.IsEmpty() {
		return nil
	}
	return g.Features[0]
}

// ToFeatureCollection GeoJSON に変換
func (g *GeofenceCollection) ToFeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if g == nil {
		return fc
	}
	for _, gf := range g.Features {
		var geom orb.Geometry = gf.Geometry
		// 単一ポリゴンはPolygonとして出力する
		if len(gf.Geometry) == 1 {
			geom = gf.Geometry[0]
		}
		f := geojson.NewFeature(geom)
		f.Properties["name"] = gf.Name
		f.Properties["type"] = gf.Type
		f.Properties["region"] = gf.Region
		f.Properties["hexagonCount"] = gf.HexagonCount
		f.Properties["minDensity"] = gf.MinDensity
		f.Properties["totalTouristSpots"] = gf.TotalTouristSpots
		f.Properties["skippedHexagons"] = gf.SkippedHexagons
		f.Properties["area"] = gf.AreaKm2
		fc.Append(f)
	}
	return fc
}

// GeofenceSnapshot Firestoreに保存するジオフェンスのスナップショット
type GeofenceSnapshot struct {
	SnapshotID        string    `json:"snapshot_id"`
	Region            string    `json:"region"`
	MinDensity        int       `json:"min_density"`
	CellSideKm        float64   `json:"cell_side_km"`
	HexagonCount      int       `json:"hexagon_count"`
	TotalTouristSpots int       `json:"total_tourist_spots"`
	SkippedHexagons   int       `json:"skipped_hexagons"`
	AreaKm2           float64   `json:"area_km2"`
	GeoJSON           string    `json:"geojson"` // FeatureCollectionのJSON
	CreatedAt         time.Time `json:"created_at"`
}

// FirestoreGeofenceSnapshot Firestoreドキュメントの構造（TTL付き）
type FirestoreGeofenceSnapshot struct {
	Region            string    `firestore:"region"`
	MinDensity        int       `firestore:"min_density"`
	CellSideKm        float64   `firestore:"cell_side_km"`
	HexagonCount      int       `firestore:"hexagon_count"`
	TotalTouristSpots int       `firestore:"total_tourist_spots"`
	SkippedHexagons   int       `firestore:"skipped_hexagons"`
	AreaKm2           float64   `firestore:"area_km2"`
	GeoJSON           string    `firestore:"geojson"`
	CreatedAt         time.Time `firestore:"created_at"`
	ExpireAt          time.Time `firestore:"expire_at"` // TTLポリシー用
}

// ToFirestore Firestore保存用の構造体に変換
func (s *GeofenceSnapshot) ToFirestore(ttlHours int) *FirestoreGeofenceSnapshot {
	return &FirestoreGeofenceSnapshot{
		Region:            s.Region,
		MinDensity:        s.MinDensity,
		CellSideKm:        s.CellSideKm,
		HexagonCount:      s.HexagonCount,
		TotalTouristSpots: s.TotalTouristSpots,
		SkippedHexagons:   s.SkippedHexagons,
		AreaKm2:           s.AreaKm2,
		GeoJSON:           s.GeoJSON,
		CreatedAt:         s.CreatedAt,
		ExpireAt:          s.CreatedAt.Add(time.Duration(ttlHours) * time.Hour),
	}
}

// ToSnapshot Firestoreドキュメントからスナップショットに変換
func (f *FirestoreGeofenceSnapshot) ToSnapshot(id string) *GeofenceSnapshot {
	return &GeofenceSnapshot{
		SnapshotID:        id,
		Region:            f.Region,
		MinDensity:        f.MinDensity,
		CellSideKm:        f.CellSideKm,
		HexagonCount:      f.HexagonCount,
		TotalTouristSpots: f.TotalTouristSpots,
		SkippedHexagons:   f.SkippedHexagons,
		AreaKm2:           f.AreaKm2,
		GeoJSON:           f.GeoJSON,
		CreatedAt:         f.CreatedAt,
	}
}
