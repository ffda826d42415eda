package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ErrInvalidBoundingBox 境界ボックスが不正
var ErrInvalidBoundingBox = errors.New("invalid bounding box")

// BoundingBox 境界ボックス (minLng, minLat, maxLng, maxLat)
type BoundingBox [4]float64

// NewBoundingBox 4つの値から境界ボックスを作成
func NewBoundingBox(minLng, minLat, maxLng, maxLat float64) BoundingBox {
	return BoundingBox{minLng, minLat, maxLng, maxLat}
}

// BoundingBoxFromBound orb.Bound から変換
func BoundingBoxFromBound(b orb.Bound) BoundingBox {
	return BoundingBox{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
}

func (b BoundingBox) MinLng() float64 { return b[0] }
func (b BoundingBox) MinLat() float64 { return b[1] }
func (b BoundingBox) MaxLng() float64 { return b[2] }
func (b BoundingBox) MaxLat() float64 { return b[3] }

// Validate 各軸で min < max かつWGS84範囲内であることを確認
func (b BoundingBox) Validate() error {
	for _, v := range b {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: 数値ではない座標が含まれています", ErrInvalidBoundingBox)
		}
	}
	if b[0] < -180 || b[2] > 180 {
		return fmt.Errorf("%w: 経度は-180から180の範囲で指定してください", ErrInvalidBoundingBox)
	}
	if b[1] < -90 || b[3] > 90 {
		return fmt.Errorf("%w: 緯度は-90から90の範囲で指定してください", ErrInvalidBoundingBox)
	}
	if b[0] >= b[2] {
		return fmt.Errorf("%w: min_lng (%.4f) は max_lng (%.4f) より小さい必要があります", ErrInvalidBoundingBox, b[0], b[2])
	}
	if b[1] >= b[3] {
		return fmt.Errorf("%w: min_lat (%.4f) は max_lat (%.4f) より小さい必要があります", ErrInvalidBoundingBox, b[1], b[3])
	}
	return nil
}

// Bound orb.Bound に変換
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b[0], b[1]},
		Max: orb.Point{b[2], b[3]},
	}
}

// Center 境界ボックスの中心
func (b BoundingBox) Center() Coordinate {
	return CoordinateFromPoint(b.Bound().Center())
}

// Contains 座標が境界ボックス内にあるか（境界を含む）
func (b BoundingBox) Contains(c Coordinate) bool {
	return b.Bound().Contains(c.Point())
}

// Intersects 他の境界ボックスと交差するか
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.Bound().Intersects(other.Bound())
}

// Pad 幅・高さの割合分だけ四方に広げる（地図表示用の余白）
func (b BoundingBox) Pad(ratio float64) BoundingBox {
	dx := (b[2] - b[0]) * ratio
	dy := (b[3] - b[1]) * ratio
	return BoundingBox{b[0] - dx, b[1] - dy, b[2] + dx, b[3] + dy}
}
