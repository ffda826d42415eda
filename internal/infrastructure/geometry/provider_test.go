package geometry

import (
	"math"
	"testing"

	"TouristMap-App/internal/domain/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var meghalayaBox = model.BoundingBox{89.61, 24.58, 92.51, 26.07}

func newTestProvider() *OrbProvider {
	return NewOrbProvider(model.DefaultGeoConfig()).(*OrbProvider)
}

func TestHexGrid(t *testing.T) {
	p := newTestProvider()

	t.Run("同じ入力なら同じセルを同じ順序で返す", func(t *testing.T) {
		first, err := p.HexGrid(meghalayaBox, 10)
		require.NoError(t, err)
		second, err := p.HexGrid(meghalayaBox, 10)
		require.NoError(t, err)

		require.NotEmpty(t, first)
		assert.Equal(t, len(first), len(second))
		assert.Equal(t, first, second)
	})

	t.Run("各セルは7点の閉じたリング", func(t *testing.T) {
		cells, err := p.HexGrid(meghalayaBox, 25)
		require.NoError(t, err)
		for _, c := range cells {
			require.Len(t, c, 1)
			assert.Len(t, c[0], 7)
			assert.True(t, c[0].Closed())
			assert.Equal(t, orb.CCW, c[0].Orientation())
		}
	})

	t.Run("セルサイズが小さいほどセル数が増える", func(t *testing.T) {
		coarse, err := p.HexGrid(meghalayaBox, 20)
		require.NoError(t, err)
		fine, err := p.HexGrid(meghalayaBox, 10)
		require.NoError(t, err)
		assert.Greater(t, len(fine), len(coarse))
	})

	t.Run("セル中心は境界ボックス付近にある", func(t *testing.T) {
		cells, err := p.HexGrid(meghalayaBox, 10)
		require.NoError(t, err)
		padded := meghalayaBox.Pad(0.1)
		for _, c := range cells {
			assert.True(t, padded.Contains(model.CoordinateFromPoint(p.Centroid(c))))
		}
	})

	t.Run("不正な境界ボックスはエラー", func(t *testing.T) {
		_, err := p.HexGrid(model.BoundingBox{92, 26, 90, 24}, 10)
		assert.ErrorIs(t, err, model.ErrInvalidBoundingBox)
	})

	t.Run("セルサイズが0以下はエラー", func(t *testing.T) {
		_, err := p.HexGrid(meghalayaBox, 0)
		assert.ErrorIs(t, err, ErrInvalidCellSize)
		_, err = p.HexGrid(meghalayaBox, -5)
		assert.ErrorIs(t, err, ErrInvalidCellSize)
	})

	t.Run("ボックスより大きいセルは空", func(t *testing.T) {
		cells, err := p.HexGrid(meghalayaBox, 500)
		require.NoError(t, err)
		assert.Empty(t, cells)
	})

	t.Run("セル数の上限を超えるとエラー", func(t *testing.T) {
		_, err := p.HexGrid(model.BoundingBox{68, 6, 97, 37}, 0.5)
		assert.ErrorIs(t, err, ErrTooManyCells)
	})
}

func TestCircle(t *testing.T) {
	p := newTestProvider()
	center := orb.Point{93.9368, 24.8170}

	t.Run("64頂点の円の面積はπr²の2%以内", func(t *testing.T) {
		for _, r := range []float64{5, 15, 30} {
			circle, err := p.Circle(center, r, 64)
			require.NoError(t, err)
			areaKm2 := p.Area(circle) / 1e6
			expected := math.Pi * r * r
			assert.InEpsilon(t, expected, areaKm2, 0.02, "radius=%v", r)
		}
	})

	t.Run("半径が大きいほど面積が大きい", func(t *testing.T) {
		prev := 0.0
		for _, r := range []float64{1, 5, 10, 15, 20, 50} {
			circle, err := p.Circle(center, r, 64)
			require.NoError(t, err)
			area := p.Area(circle)
			assert.Greater(t, area, prev)
			prev = area
		}
	})

	t.Run("頂点数は steps+1", func(t *testing.T) {
		circle, err := p.Circle(center, 10, 64)
		require.NoError(t, err)
		assert.Len(t, circle[0], 65)
		assert.True(t, circle[0].Closed())
	})

	t.Run("不正な半径や頂点数はエラー", func(t *testing.T) {
		_, err := p.Circle(center, 0, 64)
		assert.ErrorIs(t, err, ErrInvalidRadius)
		_, err = p.Circle(center, math.NaN(), 64)
		assert.ErrorIs(t, err, ErrInvalidRadius)
		_, err = p.Circle(center, 10, 2)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
		_, err = p.Circle(orb.Point{200, 0}, 10, 64)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
	})
}

func TestBuffer(t *testing.T) {
	p := newTestProvider()
	center := orb.Point{93.9368, 24.8170}

	t.Run("バッファと円は異なるジオメトリだが両方とも面積が正", func(t *testing.T) {
		circle, err := p.Circle(center, 15, 64)
		require.NoError(t, err)
		buffer, err := p.Buffer(center, 15)
		require.NoError(t, err)

		assert.NotEqual(t, circle, buffer)
		assert.Greater(t, p.Area(circle), 0.0)
		assert.Greater(t, p.Area(buffer), 0.0)
		assert.InEpsilon(t, math.Pi*15*15, p.Area(buffer)/1e6, 0.02)
	})

	t.Run("四分円あたり8頂点", func(t *testing.T) {
		buffer, err := p.Buffer(center, 20)
		require.NoError(t, err)
		assert.Len(t, buffer[0], 33)
		assert.Equal(t, orb.CCW, buffer[0].Orientation())
	})

	t.Run("距離0以下はエラー", func(t *testing.T) {
		_, err := p.Buffer(center, -1)
		assert.ErrorIs(t, err, ErrInvalidRadius)
	})
}

func square(minX, minY, size float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY}, {minX + size, minY}, {minX + size, minY + size}, {minX, minY + size}, {minX, minY},
	}}
}

func TestUnion(t *testing.T) {
	p := newTestProvider()

	t.Run("重なる正方形は1つのポリゴンになる", func(t *testing.T) {
		a := orb.MultiPolygon{square(0, 0, 2)}
		b := orb.MultiPolygon{square(1, 1, 2)}
		u, err := p.Union(a, b)
		require.NoError(t, err)
		require.Len(t, u, 1)
		assert.InDelta(t, 7.0, planar.Area(u), 1e-9)
		assert.Equal(t, orb.CCW, u[0][0].Orientation())
	})

	t.Run("離れた正方形は2つのポリゴンのまま", func(t *testing.T) {
		a := orb.MultiPolygon{square(0, 0, 1)}
		b := orb.MultiPolygon{square(5, 5, 1)}
		u, err := p.Union(a, b)
		require.NoError(t, err)
		assert.Len(t, u, 2)
		assert.InDelta(t, 2.0, planar.Area(u), 1e-9)
	})

	t.Run("隣接する六角形の結合面積は合計に等しい", func(t *testing.T) {
		cells, err := p.HexGrid(meghalayaBox, 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(cells), 2)

		u, err := p.Union(orb.MultiPolygon{cells[0]}, orb.MultiPolygon{cells[1]})
		require.NoError(t, err)
		expected := planar.Area(cells[0]) + planar.Area(cells[1])
		assert.InEpsilon(t, expected, planar.Area(u), 1e-6)
		assert.Len(t, u, 1)
	})

	t.Run("隣接セルの共有頂点は完全に一致する", func(t *testing.T) {
		cells, err := p.HexGrid(meghalayaBox, 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(cells), 2)

		shared := 0
		for _, a := range cells[0][0] {
			for _, b := range cells[1][0] {
				if a == b {
					shared++
				}
			}
		}
		// 閉じ点を除いて2頂点を共有する
		assert.GreaterOrEqual(t, shared, 2)
	})

	t.Run("グリッド全体を順に結合すると1つのポリゴンになる", func(t *testing.T) {
		cells, err := p.HexGrid(meghalayaBox, 10)
		require.NoError(t, err)

		var fence orb.MultiPolygon
		total := 0.0
		for _, c := range cells {
			fence, err = p.Union(fence, orb.MultiPolygon{c})
			require.NoError(t, err)
			total += planar.Area(c)
		}
		assert.Len(t, fence, 1)
		assert.InEpsilon(t, total, planar.Area(fence), 1e-6)
	})

	t.Run("空の左辺は右辺をそのまま返す", func(t *testing.T) {
		b := orb.MultiPolygon{square(0, 0, 1)}
		u, err := p.Union(nil, b)
		require.NoError(t, err)
		assert.Equal(t, b, u)
	})

	t.Run("不正なリングはエラー", func(t *testing.T) {
		a := orb.MultiPolygon{square(0, 0, 1)}
		bad := orb.MultiPolygon{orb.Polygon{orb.Ring{{0, 0}, {1, 1}, {0, 0}}}}
		_, err := p.Union(a, bad)
		assert.ErrorIs(t, err, ErrInvalidGeometry)

		nan := orb.MultiPolygon{orb.Polygon{orb.Ring{{0, 0}, {math.NaN(), 0}, {1, 1}, {0, 0}}}}
		_, err = p.Union(a, nan)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
	})

	t.Run("穴は時計回りで外周に割り当てられる", func(t *testing.T) {
		frame := orb.Polygon{
			orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			orb.Ring{{3, 3}, {3, 7}, {7, 7}, {7, 3}, {3, 3}},
		}
		u, err := p.Union(orb.MultiPolygon{frame}, orb.MultiPolygon{square(20, 20, 1)})
		require.NoError(t, err)
		require.Len(t, u, 2)
		var withHole orb.Polygon
		for _, poly := range u {
			if len(poly) == 2 {
				withHole = poly
			}
		}
		require.NotNil(t, withHole)
		assert.Equal(t, orb.CW, withHole[1].Orientation())
		assert.InDelta(t, 84.0, planar.Area(withHole), 1e-9)
	})
}

func TestPointOperations(t *testing.T) {
	p := newTestProvider()
	sq := square(0, 0, 2)

	t.Run("境界上の点は内側", func(t *testing.T) {
		assert.True(t, p.PointInPolygon(orb.Point{0, 1}, sq))
		assert.True(t, p.PointInPolygon(orb.Point{1, 1}, sq))
		assert.False(t, p.PointInPolygon(orb.Point{3, 1}, sq))
		assert.False(t, p.PointInPolygon(orb.Point{1, 1}, nil))
	})

	t.Run("ポリゴン内の点だけを返す", func(t *testing.T) {
		pts := []orb.Point{{1, 1}, {5, 5}, {0.5, 1.5}, {-1, 0}}
		assert.Equal(t, []orb.Point{{1, 1}, {0.5, 1.5}}, p.PointsWithinPolygon(pts, sq))
	})

	t.Run("重心と境界ボックス", func(t *testing.T) {
		c := p.Centroid(sq)
		assert.InDelta(t, 1.0, c.Lon(), 1e-12)
		assert.InDelta(t, 1.0, c.Lat(), 1e-12)
		assert.Equal(t, model.BoundingBox{0, 0, 2, 2}, p.BBox(sq))
		assert.Equal(t, model.BoundingBox{0, 0, 2, 2}, p.BBox(p.BBoxToPolygon(model.BoundingBox{0, 0, 2, 2})))
	})

	t.Run("ムンバイとデリーの距離は約1150km", func(t *testing.T) {
		d := p.Distance(orb.Point{72.8347, 18.9220}, orb.Point{77.2410, 28.6562})
		assert.InDelta(t, 1150, d, 50)
	})

	t.Run("H3インデックス", func(t *testing.T) {
		idx, err := p.CellIndex(orb.Point{91.7167, 25.3})
		require.NoError(t, err)
		assert.Len(t, idx, 15)

		again, err := p.CellIndex(orb.Point{91.7167, 25.3})
		require.NoError(t, err)
		assert.Equal(t, idx, again)

		_, err = p.CellIndex(orb.Point{math.NaN(), 0})
		assert.Error(t, err)
	})
}
