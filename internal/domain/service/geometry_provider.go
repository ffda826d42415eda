package service

import (
	"TouristMap-App/internal/domain/model"

	"github.com/paulmach/orb"
)

// GeometryProvider 計算幾何の処理を提供するインターフェース
// 集計処理はこの境界を通してのみジオメトリ計算を行う
type GeometryProvider interface {
	BBoxToPolygon(box model.BoundingBox) orb.Polygon
	// HexGrid 境界ボックスを六角形でタイル分割する（cellSideKm はkm）
	HexGrid(box model.BoundingBox, cellSideKm float64) ([]orb.Polygon, error)
	// PointInPolygon 境界上の点は内側として扱う
	PointInPolygon(p orb.Point, poly orb.Polygon) bool
	PointsWithinPolygon(points []orb.Point, poly orb.Polygon) []orb.Point
	// Area 球面上の面積 (m²)
	Area(g orb.Geometry) float64
	Centroid(poly orb.Polygon) orb.Point
	BBox(g orb.Geometry) model.BoundingBox
	Circle(center orb.Point, radiusKm float64, steps int) (orb.Polygon, error)
	Buffer(center orb.Point, distanceKm float64) (orb.Polygon, error)
	// Union 2つのポリゴンを結合する。不正な入力や結合失敗時はエラーを返す
	Union(a, b orb.MultiPolygon) (orb.MultiPolygon, error)
	// Distance 2点間の距離 (km)
	Distance(a, b orb.Point) float64
	// CellIndex 点を含むH3セルのインデックス
	CellIndex(p orb.Point) (string, error)
}
