package service

import (
	"fmt"
	"log"
	"time"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/infrastructure/metrics"

	"github.com/paulmach/orb"
)

// GeofenceService 密度しきい値以上のセルを結合してジオフェンスを作るサービス
type GeofenceService interface {
	// CreateGeofence しきい値以上のセルを生成順に結合する。該当セルが無ければ空
	CreateGeofence(cells []*model.HexCell, minDensity int, region string) *model.GeofenceCollection
	// GeofenceArea ジオフェンスの面積 (km², 小数第2位)
	GeofenceArea(geofence *model.GeofenceCollection) float64
	// IsPointInGeofence 点がジオフェンス内にあるか
	IsPointInGeofence(geofence *model.GeofenceCollection, point model.Coordinate) bool
}

type geofenceServiceImpl struct {
	geometry GeometryProvider
	config   *model.GeoConfig
}

// NewGeofenceService GeofenceServiceの新しいインスタンスを作成
func NewGeofenceService(geometry GeometryProvider, config *model.GeoConfig) GeofenceService {
	if config == nil {
		config = model.DefaultGeoConfig()
	}
	return &geofenceServiceImpl{
		geometry: geometry,
		config:   config,
	}
}

// CreateGeofence 結合に失敗したセルは警告を出してスキップし、残りで結合を続ける
func (s *geofenceServiceImpl) CreateGeofence(cells []*model.HexCell, minDensity int, region string) *model.GeofenceCollection {
	start := time.Now()
	defer func() {
		metrics.ComputeDurationMs.WithLabelValues("geofence").Observe(float64(time.Since(start).Milliseconds()))
	}()

	selected := make([]*model.HexCell, 0)
	for _, c := range cells {
		if c != nil && c.Properties.Density >= minDensity {
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		metrics.GeofencesBuiltTotal.WithLabelValues("empty").Inc()
		return model.EmptyGeofenceCollection()
	}

	totalSpots := 0
	for _, c := range selected {
		totalSpots += c.Properties.Density
	}

	skipped := 0
	var fence orb.MultiPolygon
	for i, c := range selected {
		if fence == nil {
			// 先頭セル自体が不正な場合も次のセルから始める
			if _, err := s.geometry.Union(nil, orb.MultiPolygon{c.Geometry}); err != nil {
				log.Printf("⚠️ ジオフェンス結合失敗 (index=%d, id=%s): %v", i, c.ID, err)
				skipped++
				metrics.UnionFailuresTotal.Inc()
				continue
			}
			fence = orb.MultiPolygon{c.Geometry.Clone()}
			continue
		}
		merged, err := s.geometry.Union(fence, orb.MultiPolygon{c.Geometry})
		if err != nil {
			log.Printf("⚠️ ジオフェンス結合失敗 (index=%d, id=%s): %v", i, c.ID, err)
			skipped++
			metrics.UnionFailuresTotal.Inc()
			continue
		}
		fence = merged
	}

	if fence == nil {
		log.Printf("❌ ジオフェンス生成失敗: 全 %d セルの結合に失敗しました", len(selected))
		metrics.GeofencesBuiltTotal.WithLabelValues("failed").Inc()
		return model.EmptyGeofenceCollection()
	}

	outcome := "complete"
	if skipped > 0 {
		outcome = "partial"
		log.Printf("⚠️ ジオフェンスは部分的な結果です: %d/%d セルをスキップ", skipped, len(selected))
	}
	metrics.GeofencesBuiltTotal.WithLabelValues(outcome).Inc()

	geofence := &model.Geofence{
		Name:              s.geofenceName(region),
		Type:              model.AreaTypeGeofence,
		Region:            region,
		Geometry:          fence,
		HexagonCount:      len(selected),
		MinDensity:        minDensity,
		TotalTouristSpots: totalSpots,
		SkippedHexagons:   skipped,
		AreaKm2:           model.RoundTo2(s.geometry.Area(fence) / 1e6),
	}
	log.Printf("✅ ジオフェンス生成完了: %s (%d セル, %.2f km²)", geofence.Name, geofence.HexagonCount, geofence.AreaKm2)
	return &model.GeofenceCollection{Features: []*model.Geofence{geofence}}
}

func (s *geofenceServiceImpl) geofenceName(region string) string {
	if cfg, err := s.config.Region(region); err == nil && cfg.State != "" {
		return fmt.Sprintf("%s Geofence", cfg.State)
	}
	if region == "" {
		return "Geofence"
	}
	return fmt.Sprintf("%s Geofence", region)
}

// GeofenceArea ジオフェンスが空なら0
func (s *geofenceServiceImpl) GeofenceArea(geofence *model.GeofenceCollection) float64 {
	first := geofence.First()
	if first == nil {
		return 0
	}
	return model.RoundTo2(s.geometry.Area(first.Geometry) / 1e6)
}

// IsPointInGeofence 空のジオフェンスには何も含まれない
func (s *geofenceServiceImpl) IsPointInGeofence(geofence *model.GeofenceCollection, point model.Coordinate) bool {
	first := geofence.First()
	if first == nil {
		return false
	}
	for _, poly := range first.Geometry {
		if s.geometry.PointInPolygon(point.Point(), poly) {
			return true
		}
	}
	return false
}
