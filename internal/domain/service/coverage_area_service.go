package service

import (
	"fmt"
	"log"
	"math"
	"time"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/infrastructure/metrics"
)

// CoverageAreaService スポットごとの円形エリアとバッファゾーンを作るサービス
// 各エリアは独立しており結合しない
type CoverageAreaService interface {
	CreateTouristAreas(spots []*model.TouristSpot, radiusKm float64) *model.CoverageAreaCollection
	CreateBufferAreas(spots []*model.TouristSpot, distanceKm float64) *model.CoverageAreaCollection
	// CreateStateArea 州の境界ボックスとその中のスポット数（未定義の地域はnil）
	CreateStateArea(region string, spots []*model.TouristSpot) *model.StateArea
}

type coverageAreaServiceImpl struct {
	geometry GeometryProvider
	config   *model.GeoConfig
}

// NewCoverageAreaService CoverageAreaServiceの新しいインスタンスを作成
func NewCoverageAreaService(geometry GeometryProvider, config *model.GeoConfig) CoverageAreaService {
	if config == nil {
		config = model.DefaultGeoConfig()
	}
	return &coverageAreaServiceImpl{
		geometry: geometry,
		config:   config,
	}
}

func validDistance(km float64) bool {
	return km > 0 && !math.IsNaN(km) && !math.IsInf(km, 0)
}

// CreateTouristAreas スポットごとに半径 radiusKm の円を作る
func (s *coverageAreaServiceImpl) CreateTouristAreas(spots []*model.TouristSpot, radiusKm float64) *model.CoverageAreaCollection {
	if len(spots) == 0 || !validDistance(radiusKm) {
		log.Printf("⚠️ 観光エリア生成をスキップ: spots=%d radius=%v", len(spots), radiusKm)
		return model.NewCoverageAreaCollection(nil, 0)
	}
	start := time.Now()
	defer func() {
		metrics.ComputeDurationMs.WithLabelValues("tourist_areas").Observe(float64(time.Since(start).Milliseconds()))
	}()

	areas := make([]*model.CoverageArea, 0, len(spots))
	failed := 0
	for _, spot := range spots {
		if spot == nil {
			failed++
			continue
		}
		circle, err := s.geometry.Circle(spot.Point(), radiusKm, s.config.CircleSteps)
		if err != nil {
			log.Printf("⚠️ 観光エリア生成失敗 (%s): %v", spot.Name, err)
			failed++
			metrics.CoverageFailuresTotal.WithLabelValues(model.AreaTypeTourist).Inc()
			continue
		}
		area := s.newArea(spot, model.AreaTypeTourist)
		area.Geometry = circle
		area.AreaKm2 = model.RoundTo2(s.geometry.Area(circle) / 1e6)
		area.RadiusKm = radiusKm
		area.Color = s.config.CategoryColor(spot.Category)
		areas = append(areas, area)
	}
	return model.NewCoverageAreaCollection(areas, failed)
}

// CreateBufferAreas スポットごとに距離 distanceKm のバッファゾーンを作る
func (s *coverageAreaServiceImpl) CreateBufferAreas(spots []*model.TouristSpot, distanceKm float64) *model.CoverageAreaCollection {
	if len(spots) == 0 || !validDistance(distanceKm) {
		log.Printf("⚠️ バッファゾーン生成をスキップ: spots=%d distance=%v", len(spots), distanceKm)
		return model.NewCoverageAreaCollection(nil, 0)
	}
	start := time.Now()
	defer func() {
		metrics.ComputeDurationMs.WithLabelValues("buffer_areas").Observe(float64(time.Since(start).Milliseconds()))
	}()

	areas := make([]*model.CoverageArea, 0, len(spots))
	failed := 0
	for _, spot := range spots {
		if spot == nil {
			failed++
			continue
		}
		buffer, err := s.geometry.Buffer(spot.Point(), distanceKm)
		if err != nil {
			log.Printf("⚠️ バッファゾーン生成失敗 (%s): %v", spot.Name, err)
			failed++
			metrics.CoverageFailuresTotal.WithLabelValues(model.AreaTypeBuffer).Inc()
			continue
		}
		area := s.newArea(spot, model.AreaTypeBuffer)
		area.Name = fmt.Sprintf("%s Buffer Zone", spot.Name)
		area.Geometry = buffer
		area.AreaKm2 = model.RoundTo2(s.geometry.Area(buffer) / 1e6)
		area.BufferDistanceKm = distanceKm
		area.Color = model.DefaultBufferColor
		areas = append(areas, area)
	}
	return model.NewCoverageAreaCollection(areas, failed)
}

func (s *coverageAreaServiceImpl) newArea(spot *model.TouristSpot, areaType string) *model.CoverageArea {
	return &model.CoverageArea{
		Type:        areaType,
		SpotID:      spot.ID,
		Name:        spot.Name,
		Category:    spot.Category,
		Rating:      spot.Rating,
		Description: spot.Description,
		Region:      spot.Region,
		Center:      spot.Coords,
	}
}

// CreateStateArea 州の境界ボックスをポリゴン化し、内側のスポット数を数える
func (s *coverageAreaServiceImpl) CreateStateArea(region string, spots []*model.TouristSpot) *model.StateArea {
	cfg, err := s.config.Region(region)
	if err != nil {
		log.Printf("⚠️ 州エリア生成失敗: %v", err)
		return nil
	}
	if err := cfg.BBox.Validate(); err != nil {
		log.Printf("⚠️ 州エリア生成失敗 (%s): %v", region, err)
		return nil
	}

	polygon := s.geometry.BBoxToPolygon(cfg.BBox)
	inside := s.geometry.PointsWithinPolygon(model.SpotPoints(spots), polygon)

	name := cfg.State
	if name == "" {
		name = cfg.Name
	}
	return &model.StateArea{
		Name:              fmt.Sprintf("%s State", name),
		Type:              model.AreaTypeState,
		Region:            cfg.Name,
		Geometry:          polygon,
		AreaKm2:           model.RoundTo2(s.geometry.Area(polygon) / 1e6),
		TouristSpotsCount: len(inside),
		Color:             model.DefaultStateAreaColor,
	}
}
