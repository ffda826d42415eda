package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// areaTolerance 結合結果の面積検証に使う相対許容誤差
const areaTolerance = 1e-9

// Union 2つのポリゴンを ctessum/geom のポリゴンクリッピングで結合する
// 入力が不正、クリッピングが panic、または結果が入力より小さい場合はエラー
func (p *OrbProvider) Union(a, b orb.MultiPolygon) (result orb.MultiPolygon, err error) {
	if err := validateMultiPolygon(a); err != nil {
		return nil, fmt.Errorf("%w: 左辺: %v", ErrInvalidGeometry, err)
	}
	if err := validateMultiPolygon(b); err != nil {
		return nil, fmt.Errorf("%w: 右辺: %v", ErrInvalidGeometry, err)
	}
	if len(a) == 0 {
		return b.Clone(), nil
	}
	if len(b) == 0 {
		return a.Clone(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrUnionFailed, r)
		}
	}()

	merged := toGeomPolygon(a).Union(toGeomPolygon(b))
	result = fromGeomPolygon(flattenPolygonal(merged))
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: 結果が空です", ErrUnionFailed)
	}

	minArea := math.Max(planar.Area(a), planar.Area(b))
	if planar.Area(result) < minArea*(1-areaTolerance) {
		return nil, fmt.Errorf("%w: 結果の面積が入力より小さくなりました", ErrUnionFailed)
	}
	return result, nil
}

func validateMultiPolygon(mp orb.MultiPolygon) error {
	for i, poly := range mp {
		if len(poly) == 0 {
			return fmt.Errorf("ポリゴン%dにリングがありません", i)
		}
		for j, ring := range poly {
			if len(ring) < 4 {
				return fmt.Errorf("ポリゴン%dのリング%dの頂点数が不足しています (%d)", i, j, len(ring))
			}
			for _, pt := range ring {
				if math.IsNaN(pt[0]) || math.IsNaN(pt[1]) || math.IsInf(pt[0], 0) || math.IsInf(pt[1], 0) {
					return fmt.Errorf("ポリゴン%dのリング%dに数値ではない座標があります", i, j)
				}
			}
			if planar.Area(ring) == 0 {
				return fmt.Errorf("ポリゴン%dのリング%dの面積が0です", i, j)
			}
		}
	}
	return nil
}

// toGeomPolygon 全リングを1つの geom.Polygon にまとめる（閉じ点は除く）
func toGeomPolygon(mp orb.MultiPolygon) geom.Polygon {
	out := make(geom.Polygon, 0)
	for _, poly := range mp {
		for _, ring := range poly {
			n := len(ring)
			if ring.Closed() {
				n--
			}
			path := make([]geom.Point, n)
			for i := 0; i < n; i++ {
				path[i] = geom.Point{X: ring[i][0], Y: ring[i][1]}
			}
			out = append(out, path)
		}
	}
	return out
}

// flattenPolygonal クリッピング結果の全リングを1つの geom.Polygon にまとめる
func flattenPolygonal(g geom.Polygonal) geom.Polygon {
	if g == nil {
		return nil
	}
	if poly, ok := g.(geom.Polygon); ok {
		return poly
	}
	out := make(geom.Polygon, 0)
	for _, poly := range g.Polygons() {
		out = append(out, poly...)
	}
	return out
}

type classifiedRing struct {
	ring   orb.Ring
	area   float64
	bound  orb.Bound
	depth  int
	parent int
}

// fromGeomPolygon クリッピング結果のリングを包含の深さで外周と穴に分類する
func fromGeomPolygon(g geom.Polygon) orb.MultiPolygon {
	rings := make([]*classifiedRing, 0, len(g))
	for _, path := range g {
		if len(path) < 3 {
			continue
		}
		ring := make(orb.Ring, 0, len(path)+1)
		for _, pt := range path {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}
		area := planar.Area(ring)
		if area == 0 {
			continue
		}
		rings = append(rings, &classifiedRing{ring: ring, area: area, bound: ring.Bound(), parent: -1})
	}

	// 大きい順に並べると親は常に前方にある
	sort.SliceStable(rings, func(i, j int) bool { return rings[i].area > rings[j].area })

	for i, r := range rings {
		for j := i - 1; j >= 0; j-- {
			if containsRing(rings[j], r) {
				r.depth = rings[j].depth + 1
				r.parent = j
				break
			}
		}
	}

	polys := make(orb.MultiPolygon, 0)
	index := make(map[int]int)
	for i, r := range rings {
		if r.depth%2 != 0 {
			continue
		}
		outer := r.ring
		if outer.Orientation() != orb.CCW {
			outer.Reverse()
		}
		index[i] = len(polys)
		polys = append(polys, orb.Polygon{outer})
	}
	for _, r := range rings {
		if r.depth%2 == 0 || r.parent < 0 {
			continue
		}
		pi, ok := index[r.parent]
		if !ok {
			continue
		}
		hole := r.ring
		if hole.Orientation() != orb.CW {
			hole.Reverse()
		}
		polys[pi] = append(polys[pi], hole)
	}
	return polys
}

func containsRing(outer, inner *classifiedRing) bool {
	if outer.area <= inner.area {
		return false
	}
	if !outer.bound.Contains(inner.bound.Min) || !outer.bound.Contains(inner.bound.Max) {
		return false
	}
	// 境界上でない頂点で判定する
	for _, pt := range inner.ring {
		if !onRing(outer.ring, pt) {
			return planar.RingContains(outer.ring, pt)
		}
	}
	return planar.RingContains(outer.ring, inner.bound.Center())
}

func onRing(ring orb.Ring, pt orb.Point) bool {
	for _, v := range ring {
		if v == pt {
			return true
		}
	}
	return false
}
