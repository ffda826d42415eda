package service_test

import (
	"math/rand"
	"testing"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/service"
	"TouristMap-App/internal/infrastructure/geometry"
	"TouristMap-App/internal/infrastructure/metrics"

	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBox = model.BoundingBox{90, 25, 91.5, 26}

func newServices() (service.GeometryProvider, service.HexGridService, *model.GeoConfig) {
	cfg := model.DefaultGeoConfig()
	geo := geometry.NewOrbProvider(cfg)
	return geo, service.NewHexGridService(geo, cfg), cfg
}

func spotAt(id int, lng, lat float64) *model.TouristSpot {
	return &model.TouristSpot{
		ID:       id,
		Name:     "spot",
		Coords:   model.NewCoordinate(lng, lat),
		Region:   model.RegionMeghalaya,
		Category: model.CategoryNature,
		Rating:   4.5,
	}
}

func randomSpots(rng *rand.Rand, box model.BoundingBox, n int) []*model.TouristSpot {
	spots := make([]*model.TouristSpot, 0, n)
	for i := 0; i < n; i++ {
		lng := box.MinLng() + rng.Float64()*(box.MaxLng()-box.MinLng())
		lat := box.MinLat() + rng.Float64()*(box.MaxLat()-box.MinLat())
		spots = append(spots, spotAt(i+1, lng, lat))
	}
	return spots
}

func TestUpdateHexagonData(t *testing.T) {
	geo, svc, cfg := newServices()
	polygons := svc.GenerateHexGrid(testBox, 15)
	require.NotEmpty(t, polygons)

	t.Run("密度はセルごとの点の内外判定の件数と一致する", func(t *testing.T) {
		spots := randomSpots(rand.New(rand.NewSource(42)), testBox, 60)
		cells := svc.UpdateHexagonData(polygons, spots, model.RegionMeghalaya)
		require.Len(t, cells, len(polygons))

		for i, c := range cells {
			expected := 0
			for _, s := range spots {
				if geo.PointInPolygon(s.Point(), polygons[i]) {
					expected++
				}
			}
			assert.Equal(t, expected, c.Properties.Density, c.ID)
			assert.Equal(t, c.Properties.Density, c.Properties.TouristCount)
			assert.Equal(t, c.Properties.Density > 0, c.Properties.IsActive)
			assert.Equal(t, cfg.Thresholds.Classify(c.Properties.Density), c.Properties.DensityClass)
		}
	})

	t.Run("同じセルに8件あれば高密度になる", func(t *testing.T) {
		target := len(polygons) / 2
		center := geo.Centroid(polygons[target])
		spots := make([]*model.TouristSpot, 0, 8)
		for i := 0; i < 8; i++ {
			spots = append(spots, spotAt(i+1, center.Lon(), center.Lat()))
		}

		cells := svc.UpdateHexagonData(polygons, spots, model.RegionMeghalaya)
		hot := cells[target]
		assert.Equal(t, 8, hot.Properties.Density)
		assert.Equal(t, model.DensityHigh, hot.Properties.DensityClass)
		assert.Equal(t, "#ff4757", hot.Properties.Color)
		assert.True(t, hot.Properties.IsActive)
		assert.NotEmpty(t, hot.Properties.H3Index)

		for i, c := range cells {
			if i == target {
				continue
			}
			assert.Equal(t, 0, c.Properties.Density)
		}
	})

	t.Run("スポットが無ければ全セル非アクティブ", func(t *testing.T) {
		cells := svc.UpdateHexagonData(polygons, nil, model.RegionMeghalaya)
		for _, c := range cells {
			assert.Equal(t, 0, c.Properties.Density)
			assert.False(t, c.Properties.IsActive)
			assert.Equal(t, model.DensityInactive, c.Properties.DensityClass)
			assert.Equal(t, "#ddd", c.Properties.Color)
		}
	})

	t.Run("IDは生成順でセルの属性を持つ", func(t *testing.T) {
		cells := svc.UpdateHexagonData(polygons, nil, model.RegionMeghalaya)
		for i, c := range cells {
			assert.Equal(t, model.HexCellID(i), c.ID)
			assert.Equal(t, model.RegionMeghalaya, c.Properties.Region)
			assert.Greater(t, c.Properties.AreaKm2, 0.0)
			assert.True(t, c.Properties.BBox.Contains(c.Properties.Centroid))
		}
	})
}

func TestGenerateHexGrid(t *testing.T) {
	_, svc, _ := newServices()

	t.Run("不正なセルサイズは空を返す", func(t *testing.T) {
		assert.Empty(t, svc.GenerateHexGrid(testBox, 0))
		assert.Empty(t, svc.GenerateHexGrid(testBox, -5))
	})

	t.Run("不正な境界ボックスは空を返す", func(t *testing.T) {
		assert.Empty(t, svc.GenerateHexGrid(model.BoundingBox{91, 25, 90, 26}, 10))
	})
}

func TestGenerateRegionHexGrid(t *testing.T) {
	_, svc, _ := newServices()

	t.Run("州の属性が付与される", func(t *testing.T) {
		cells := svc.GenerateRegionHexGrid(model.RegionMeghalaya, nil, 25)
		require.NotEmpty(t, cells)
		for _, c := range cells {
			assert.Equal(t, "Meghalaya", c.Properties.State)
			assert.True(t, c.Properties.IsGeofenced)
			assert.Equal(t, model.RegionMeghalaya, c.Properties.Region)
		}
	})

	t.Run("未定義の地域は空", func(t *testing.T) {
		assert.Empty(t, svc.GenerateRegionHexGrid("atlantis", nil, 10))
	})
}

func TestGenerateIndiaHexGrid(t *testing.T) {
	cfg := model.DefaultGeoConfig()
	for i := range cfg.IndiaRegions {
		cfg.IndiaRegions[i].CellSideKm = 150
	}
	svc := service.NewHexGridService(geometry.NewOrbProvider(cfg), cfg)

	t.Run("地域の順に連結されIDは地域ごとに0から始まる", func(t *testing.T) {
		cells := svc.GenerateIndiaHexGrid(nil, 0)
		require.NotEmpty(t, cells)

		order := make([]string, 0)
		for _, c := range cells {
			if len(order) == 0 || order[len(order)-1] != c.Properties.Region {
				order = append(order, c.Properties.Region)
				assert.Equal(t, "hex-0", c.ID)
			}
		}
		assert.Equal(t, cfg.RegionNames(), order)
	})

	t.Run("セルサイズ指定時は全地域をそのサイズで作る", func(t *testing.T) {
		coarse := svc.GenerateIndiaHexGrid(nil, 0)
		fine := svc.GenerateIndiaHexGrid(nil, 100)
		assert.Greater(t, len(fine), len(coarse))

		before := testutil.ToFloat64(metrics.HexGridsGeneratedTotal.WithLabelValues(model.RegionWest))
		svc.GenerateIndiaHexGrid(nil, 100)
		after := testutil.ToFloat64(metrics.HexGridsGeneratedTotal.WithLabelValues(model.RegionWest))
		assert.Equal(t, before+1, after)
	})
}

func TestGetHexagonsContainingSpots(t *testing.T) {
	geo, svc, _ := newServices()
	polygons := svc.GenerateHexGrid(testBox, 15)
	cells := svc.UpdateHexagonData(polygons, nil, model.RegionMeghalaya)
	center := geo.Centroid(polygons[3])

	t.Run("スポットを含むセルだけを返す", func(t *testing.T) {
		found := svc.GetHexagonsContainingSpots(cells, []*model.TouristSpot{spotAt(1, center.Lon(), center.Lat())})
		require.Len(t, found, 1)
		assert.Equal(t, cells[3].ID, found[0].ID)
	})

	t.Run("スポットが無ければ空", func(t *testing.T) {
		assert.Empty(t, svc.GetHexagonsContainingSpots(cells, nil))
	})
}

func TestSimulateRealTimeUpdate(t *testing.T) {
	_, svc, cfg := newServices()
	polygons := svc.GenerateHexGrid(testBox, 10)
	spots := randomSpots(rand.New(rand.NewSource(7)), testBox, 80)
	cells := svc.UpdateHexagonData(polygons, spots, model.RegionMeghalaya)

	before := make([]int, len(cells))
	for i, c := range cells {
		before[i] = c.Properties.Density
	}

	t.Run("元のセルは変更されず密度は±1以内", func(t *testing.T) {
		updated := svc.SimulateRealTimeUpdate(cells, rand.New(rand.NewSource(1)))
		require.Len(t, updated, len(cells))

		changed := 0
		for i, c := range updated {
			assert.Equal(t, cells[i].ID, c.ID)
			assert.Equal(t, before[i], cells[i].Properties.Density)
			assert.GreaterOrEqual(t, c.Properties.Density, 0)
			assert.LessOrEqual(t, abs(c.Properties.Density-before[i]), 1)
			assert.Equal(t, cfg.Thresholds.Classify(c.Properties.Density), c.Properties.DensityClass)
			assert.Equal(t, c.Properties.Density > 0, c.Properties.IsActive)
			if c.Properties.Density != before[i] {
				changed++
			}
		}
		assert.Less(t, changed, len(cells))
	})

	t.Run("同じシードなら同じ結果", func(t *testing.T) {
		a := svc.SimulateRealTimeUpdate(cells, rand.New(rand.NewSource(99)))
		b := svc.SimulateRealTimeUpdate(cells, rand.New(rand.NewSource(99)))
		for i := range a {
			assert.Equal(t, a[i].Properties.Density, b[i].Properties.Density)
		}
	})

	t.Run("ジオメトリは複製される", func(t *testing.T) {
		updated := svc.SimulateRealTimeUpdate(cells[:1], rand.New(rand.NewSource(1)))
		updated[0].Geometry[0][0] = orb.Point{0, 0}
		assert.NotEqual(t, orb.Point{0, 0}, cells[0].Geometry[0][0])
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
