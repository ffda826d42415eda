package geometry

import (
	"errors"
	"math"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

var (
	ErrInvalidCellSize = errors.New("invalid hexagon cell size")
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrUnionFailed     = errors.New("polygon union failed")
	ErrInvalidRadius   = errors.New("invalid radius")
	ErrTooManyCells    = errors.New("hex grid exceeds cell limit")
)

const (
	// maxHexCells 1回のグリッド生成で許容するセル数の上限
	maxHexCells = 200000
	// bufferQuadrantSegments バッファの四分円あたり既定頂点数
	bufferQuadrantSegments = 8
)

// OrbProvider paulmach/orb を中心としたGeometryProviderの実装
type OrbProvider struct {
	bufferSteps  int
	h3Resolution int
}

// NewOrbProvider 新しいOrbProviderを作成
func NewOrbProvider(cfg *model.GeoConfig) service.GeometryProvider {
	p := &OrbProvider{
		bufferSteps:  bufferQuadrantSegments,
		h3Resolution: 5,
	}
	if cfg != nil {
		if cfg.BufferSteps > 0 {
			p.bufferSteps = cfg.BufferSteps
		}
		if cfg.H3Resolution >= 0 && cfg.H3Resolution <= 15 {
			p.h3Resolution = cfg.H3Resolution
		}
	}
	return p
}

// BBoxToPolygon 境界ボックスを矩形ポリゴンに変換
func (p *OrbProvider) BBoxToPolygon(box model.BoundingBox) orb.Polygon {
	return box.Bound().ToPolygon()
}

// PointInPolygon 点がポリゴン内にあるか（境界を含む）
func (p *OrbProvider) PointInPolygon(pt orb.Point, poly orb.Polygon) bool {
	if len(poly) == 0 {
		return false
	}
	return planar.PolygonContains(poly, pt)
}

// PointsWithinPolygon ポリゴン内の点のみを返す
func (p *OrbProvider) PointsWithinPolygon(points []orb.Point, poly orb.Polygon) []orb.Point {
	within := make([]orb.Point, 0)
	if len(poly) == 0 {
		return within
	}
	bound := poly.Bound()
	for _, pt := range points {
		if !bound.Contains(pt) {
			continue
		}
		if planar.PolygonContains(poly, pt) {
			within = append(within, pt)
		}
	}
	return within
}

// Area 球面面積 (m²)
func (p *OrbProvider) Area(g orb.Geometry) float64 {
	if g == nil {
		return 0
	}
	return geo.Area(g)
}

// Centroid ポリゴンの重心
func (p *OrbProvider) Centroid(poly orb.Polygon) orb.Point {
	if len(poly) == 0 {
		return orb.Point{}
	}
	c, area := planar.CentroidArea(poly)
	if area == 0 || math.IsNaN(c[0]) || math.IsNaN(c[1]) {
		// 面積0のリングは外接矩形の中心で代用
		return poly.Bound().Center()
	}
	return c
}

// BBox ジオメトリの境界ボックス
func (p *OrbProvider) BBox(g orb.Geometry) model.BoundingBox {
	if g == nil {
		return model.BoundingBox{}
	}
	return model.BoundingBoxFromBound(g.Bound())
}

// Distance 2点間の大円距離 (km)
func (p *OrbProvider) Distance(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b) / 1000
}
