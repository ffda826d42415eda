package model

import "github.com/paulmach/orb"

// Coordinate 経度緯度の組 [lng, lat]（WGS84, 度）
type Coordinate [2]float64

// NewCoordinate 経度・緯度からCoordinateを作成
func NewCoordinate(lng, lat float64) Coordinate {
	return Coordinate{lng, lat}
}

// Lng 経度
func (c Coordinate) Lng() float64 { return c[0] }

// Lat 緯度
func (c Coordinate) Lat() float64 { return c[1] }

// Point orb.Point に変換
func (c Coordinate) Point() orb.Point {
	return orb.Point{c[0], c[1]}
}

// CoordinateFromPoint orb.Point から Coordinate に変換
func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{p.Lon(), p.Lat()}
}

// IsValid WGS84の範囲内かチェック
func (c Coordinate) IsValid() bool {
	return c[0] >= -180 && c[0] <= 180 && c[1] >= -90 && c[1] <= 90
}

// TouristSpot 観光スポットを表すモデル（読み込み後は不変の参照データ）
type TouristSpot struct {
	ID          int        `json:"id" db:"id"`                   // ユニークなスポットID
	Name        string     `json:"name" db:"name"`               // スポット名
	Coords      Coordinate `json:"coords" db:"coords"`           // [lng, lat]
	Region      string     `json:"region" db:"region"`           // 地域タグ（west, east, north, south, meghalaya, manipur）
	Category    string     `json:"category" db:"category"`       // カテゴリ
	Description string     `json:"description" db:"description"` // 説明文
	Rating      float64    `json:"rating" db:"rating"`           // 評価値
}

// Point スポット座標を orb.Point で返す
func (s *TouristSpot) Point() orb.Point {
	return s.Coords.Point()
}

// SpotPoints スポット一覧を座標配列に変換
func SpotPoints(spots []*TouristSpot) []orb.Point {
	points := make([]orb.Point, 0, len(spots))
	for _, s := range spots {
		if s == nil {
			continue
		}
		points = append(points, s.Point())
	}
	return points
}
