package model

// UpdateGeofenceRequest ジオフェンスしきい値の更新リクエスト
type UpdateGeofenceRequest struct {
	MinDensity *int `json:"min_density" binding:"required"`
}

// RefreshHexagonsRequest グリッド再生成リクエスト
type RefreshHexagonsRequest struct {
	Region     string  `json:"region"`
	CellSideKm float64 `json:"cell_side_km"`
}

// HexagonsResponse グリッド取得レスポンス
type HexagonsResponse struct {
	Region   string        `json:"region"`
	Version  int64         `json:"version"`
	Stats    *HexagonStats `json:"stats"`
	Hexagons interface{}   `json:"hexagons"` // GeoJSON FeatureCollection
}

// GeofenceResponse ジオフェンス取得レスポンス
type GeofenceResponse struct {
	Region     string        `json:"region"`
	MinDensity int           `json:"min_density"`
	CellSideKm float64       `json:"cell_side_km"`
	AreaKm2    float64       `json:"area_km2"`
	Stats      *HexagonStats `json:"stats"`
	Hexagons   interface{}   `json:"hexagons"`
	Geofence   interface{}   `json:"geofence"`
}

// NearestSpot 距離付きスポット
type NearestSpot struct {
	*TouristSpot
	DistanceKm float64 `json:"distance"`
}
