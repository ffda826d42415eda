package service

import (
	"log"
	"math/rand"
	"time"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/infrastructure/metrics"

	"github.com/paulmach/orb"
)

// simulateChangeProbability 疑似リアルタイム更新でセル密度が変化する確率
const simulateChangeProbability = 0.1

// HexGridService 六角形グリッドの生成と密度付与を行うサービス
type HexGridService interface {
	// GenerateHexGrid 境界ボックスをタイル分割する。失敗時は空を返す
	GenerateHexGrid(box model.BoundingBox, cellSideKm float64) []orb.Polygon
	// UpdateHexagonData 各セルに密度などの属性を付与した新しいコレクションを返す
	UpdateHexagonData(polygons []orb.Polygon, spots []*model.TouristSpot, region string) []*model.HexCell
	// GenerateIndiaHexGrid インドの各地域のグリッドを設定順に連結して返す（cellSideKm<=0 なら地域ごとの設定値）
	GenerateIndiaHexGrid(spots []*model.TouristSpot, cellSideKm float64) []*model.HexCell
	// GenerateRegionHexGrid 州単位のグリッドを生成する（cellSideKm<=0 なら設定値）
	GenerateRegionHexGrid(region string, spots []*model.TouristSpot, cellSideKm float64) []*model.HexCell
	// GetHexagonsContainingSpots 指定スポットのいずれかを含むセル
	GetHexagonsContainingSpots(cells []*model.HexCell, spots []*model.TouristSpot) []*model.HexCell
	// SimulateRealTimeUpdate 密度をランダムに±1変化させた新しいコレクションを返す
	SimulateRealTimeUpdate(cells []*model.HexCell, rng *rand.Rand) []*model.HexCell
}

type hexGridServiceImpl struct {
	geometry GeometryProvider
	config   *model.GeoConfig
}

// NewHexGridService HexGridServiceの新しいインスタンスを作成
func NewHexGridService(geometry GeometryProvider, config *model.GeoConfig) HexGridService {
	if config == nil {
		config = model.DefaultGeoConfig()
	}
	return &hexGridServiceImpl{
		geometry: geometry,
		config:   config,
	}
}

// GenerateHexGrid 境界ボックスを六角形グリッドに分割
func (s *hexGridServiceImpl) GenerateHexGrid(box model.BoundingBox, cellSideKm float64) []orb.Polygon {
	start := time.Now()
	polygons, err := s.geometry.HexGrid(box, cellSideKm)
	metrics.ComputeDurationMs.WithLabelValues("hexgrid").Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		log.Printf("⚠️ 六角形グリッド生成失敗 bbox=%v size=%.2fkm: %v", box, cellSideKm, err)
		return []orb.Polygon{}
	}
	metrics.HexCellsGenerated.Observe(float64(len(polygons)))
	return polygons
}

// UpdateHexagonData セルごとにスポット数を数えて属性を付与
func (s *hexGridServiceImpl) UpdateHexagonData(polygons []orb.Polygon, spots []*model.TouristSpot, region string) []*model.HexCell {
	index := NewSpotIndex(spots)
	cells := make([]*model.HexCell, 0, len(polygons))

	for i, poly := range polygons {
		density := s.countSpots(index, poly)
		class := s.config.Thresholds.Classify(density)
		centroid := s.geometry.Centroid(poly)

		cell := &model.HexCell{
			ID:       model.HexCellID(i),
			Geometry: poly.Clone(),
			Properties: model.HexCellProperties{
				Density:      density,
				Color:        s.config.DensityColors.Color(class),
				DensityClass: class,
				Centroid:     model.CoordinateFromPoint(centroid),
				BBox:         s.geometry.BBox(poly),
				TouristCount: density,
				AreaKm2:      s.geometry.Area(poly) / 1e6,
				IsActive:     density > 0,
				Region:       region,
			},
		}

		if h3Index, err := s.geometry.CellIndex(centroid); err == nil {
			cell.Properties.H3Index = h3Index
		} else {
			log.Printf("⚠️ H3インデックス計算失敗 (%s): %v", cell.ID, err)
		}

		cells = append(cells, cell)
	}
	return cells
}

// countSpots R-treeで候補を絞り込み、点の内外判定で数える
func (s *hexGridServiceImpl) countSpots(index *SpotIndex, poly orb.Polygon) int {
	if len(poly) == 0 {
		return 0
	}
	count := 0
	for _, spot := range index.Candidates(poly.Bound()) {
		if s.geometry.PointInPolygon(spot.Point(), poly) {
			count++
		}
	}
	return count
}

// GenerateIndiaHexGrid 地域ごとにグリッドを生成して連結（IDは地域ごとに0から振る）
func (s *hexGridServiceImpl) GenerateIndiaHexGrid(spots []*model.TouristSpot, cellSideKm float64) []*model.HexCell {
	all := make([]*model.HexCell, 0)
	for _, region := range s.config.IndiaRegions {
		if region.Name == model.RegionAll {
			continue
		}
		size := region.CellSideKm
		if cellSideKm > 0 {
			size = cellSideKm
		}
		polygons := s.GenerateHexGrid(region.BBox, size)
		if len(polygons) == 0 {
			metrics.HexGridFailuresTotal.WithLabelValues(region.Name).Inc()
		}
		cells := s.UpdateHexagonData(polygons, spots, region.Name)
		metrics.HexGridsGeneratedTotal.WithLabelValues(region.Name).Inc()
		all = append(all, cells...)
	}
	log.Printf("✅ インド全体グリッド生成完了: %d セル", len(all))
	return all
}

// GenerateRegionHexGrid 州単位のグリッドを生成し州のメタデータを付与
func (s *hexGridServiceImpl) GenerateRegionHexGrid(region string, spots []*model.TouristSpot, cellSideKm float64) []*model.HexCell {
	cfg, err := s.config.Region(region)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return []*model.HexCell{}
	}
	if cellSideKm <= 0 {
		cellSideKm = cfg.CellSideKm
	}

	polygons := s.GenerateHexGrid(cfg.BBox, cellSideKm)
	if len(polygons) == 0 {
		metrics.HexGridFailuresTotal.WithLabelValues(region).Inc()
	}
	cells := s.UpdateHexagonData(polygons, spots, cfg.Name)
	for _, c := range cells {
		c.Properties.State = cfg.State
		c.Properties.IsGeofenced = cfg.Geofenced
	}
	metrics.HexGridsGeneratedTotal.WithLabelValues(region).Inc()
	return cells
}

// GetHexagonsContainingSpots 指定スポットを1つ以上含むセルを返す
func (s *hexGridServiceImpl) GetHexagonsContainingSpots(cells []*model.HexCell, spots []*model.TouristSpot) []*model.HexCell {
	result := make([]*model.HexCell, 0)
	if len(spots) == 0 {
		return result
	}
	index := NewSpotIndex(spots)
	for _, c := range cells {
		if s.countSpots(index, c.Geometry) > 0 {
			result = append(result, c)
		}
	}
	return result
}

// SimulateRealTimeUpdate 各セル10%の確率で密度を±1（0未満にはしない）
func (s *hexGridServiceImpl) SimulateRealTimeUpdate(cells []*model.HexCell, rng *rand.Rand) []*model.HexCell {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	updated := make([]*model.HexCell, 0, len(cells))
	for _, c := range cells {
		next := c.Clone()
		if rng.Float64() < simulateChangeProbability {
			delta := 1
			if rng.Float64() < 0.5 {
				delta = -1
			}
			density := next.Properties.Density + delta
			if density < 0 {
				density = 0
			}
			class := s.config.Thresholds.Classify(density)
			next.Properties.Density = density
			next.Properties.TouristCount = density
			next.Properties.DensityClass = class
			next.Properties.Color = s.config.DensityColors.Color(class)
			next.Properties.IsActive = density > 0
		}
		updated = append(updated, next)
	}
	return updated
}
