package repository

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"TouristMap-App/internal/domain/model"
)

// GeoPoint PostGIS POINT 型の JSON 表現
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// CoordinateToGeoPoint model.Coordinate を PostGIS POINT 形式に変換
func CoordinateToGeoPoint(c model.Coordinate) *GeoPoint {
	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{c.Lng(), c.Lat()},
	}
}

// GeoPointToCoordinate PostGIS POINT を model.Coordinate に変換
func GeoPointToCoordinate(p *GeoPoint) (model.Coordinate, error) {
	if p == nil || len(p.Coordinates) < 2 {
		return model.Coordinate{}, fmt.Errorf("POINT座標が不正です")
	}
	if p.Type != "" && p.Type != "Point" {
		return model.Coordinate{}, fmt.Errorf("POINTではないジオメトリです: %s", p.Type)
	}
	return model.NewCoordinate(p.Coordinates[0], p.Coordinates[1]), nil
}

// ParseGeoPoint ST_AsGeoJSON の出力を座標に変換
func ParseGeoPoint(raw string) (model.Coordinate, error) {
	var p GeoPoint
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.Coordinate{}, fmt.Errorf("location JSONBパースエラー: %w", err)
	}
	return GeoPointToCoordinate(&p)
}

// BoundingBoxPolygonJSON 境界ボックスを ST_GeomFromGeoJSON に渡せる文字列にする
func BoundingBoxPolygonJSON(box model.BoundingBox) (string, error) {
	var poly orb.Polygon = box.Bound().ToPolygon()
	data, err := geojson.NewGeometry(poly).MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("境界ボックスのGeoJSON変換失敗: %w", err)
	}
	return string(data), nil
}
