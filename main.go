package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"TouristMap-App/internal/config"
	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/service"
	"TouristMap-App/internal/infrastructure/geometry"
	repoImpl "TouristMap-App/internal/repository"
	"TouristMap-App/internal/usecase"
)

// regionReport 1地域分の集計結果
type regionReport struct {
	Region   string                  `json:"region"`
	Stats    *model.HexagonStats     `json:"stats"`
	Geofence *model.GeofenceResponse `json:"geofence,omitempty"`
	Coverage *model.CoverageReport   `json:"coverage"`
}

func main() {
	region := flag.String("region", model.RegionMeghalaya, "集計する地域 (all, west, east, north, south, meghalaya, manipur)")
	size := flag.Float64("size", 0, "セルの辺長 km（0なら設定値）")
	minDensity := flag.Int("min-density", -1, "ジオフェンスのしきい値（負なら設定値）")
	radius := flag.Float64("radius", 0, "観光エリアの半径 km（0なら設定値）")
	buffer := flag.Float64("buffer", 0, "バッファ距離 km（0なら設定値）")
	withGeometry := flag.Bool("geometry", false, "GeoJSONを出力に含める")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	ctx := context.Background()
	provider := geometry.NewOrbProvider(cfg.Geo)
	spotsRepo := repoImpl.NewStaticTouristSpotsRepository()

	hexagons := usecase.NewHexagonUseCase(service.NewHexGridService(provider, cfg.Geo), spotsRepo, nil, nil, cfg.Geo, nil)
	geofences := usecase.NewGeofenceUseCase(hexagons, service.NewGeofenceService(provider, cfg.Geo), nil, cfg.Geo, cfg.SnapshotTTLHours)
	coverage := usecase.NewCoverageUseCase(service.NewCoverageAreaService(provider, cfg.Geo), spotsRepo, cfg.Geo)

	log.Printf("🚀 Building report for region %s", *region)

	var stats *model.HexagonStats
	if *size > 0 {
		resp, err := hexagons.Refresh(ctx, *region, *size)
		if err != nil {
			log.Fatalf("グリッド生成失敗: %v", err)
		}
		stats = resp.Stats
	} else {
		stats, err = hexagons.GetStats(ctx, *region)
		if err != nil {
			log.Fatalf("統計の取得失敗: %v", err)
		}
	}

	report := regionReport{Region: *region, Stats: stats}

	if *region != model.RegionAll {
		var gf *model.GeofenceResponse
		if *minDensity >= 0 {
			gf, err = geofences.UpdateMinDensity(ctx, *region, *minDensity)
		} else {
			gf, err = geofences.GetGeofence(ctx, *region, *size)
		}
		if err != nil {
			log.Fatalf("ジオフェンス生成失敗: %v", err)
		}
		if !*withGeometry {
			gf.Hexagons = nil
			gf.Geofence = nil
		}
		report.Geofence = gf
	}

	report.Coverage, err = coverage.GetCoverage(ctx, *region, *radius, *buffer)
	if err != nil {
		log.Fatalf("カバレッジ計算失敗: %v", err)
	}
	if !*withGeometry {
		stripCoverageGeometry(report.Coverage)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("出力失敗: %v", err)
	}
	log.Printf("✅ Report complete: %d hexagons, %d active", stats.TotalHexagons, stats.ActiveHexagons)
}

func stripCoverageGeometry(r *model.CoverageReport) {
	for _, a := range r.TouristAreas.Features {
		a.Geometry = nil
	}
	for _, a := range r.BufferAreas.Features {
		a.Geometry = nil
	}
	if r.StateArea != nil {
		r.StateArea.Geometry = nil
	}
}
