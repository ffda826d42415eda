package usecase

import (
	"context"
	"fmt"
	"log"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
	"TouristMap-App/internal/domain/service"
)

// CoverageUseCase 地域のスポットから観光エリア・バッファゾーン・州エリアを作るユースケース
type CoverageUseCase interface {
	// GetCoverage radiusKm / bufferKm が0以下なら設定の既定値を使う
	GetCoverage(ctx context.Context, region string, radiusKm, bufferKm float64) (*model.CoverageReport, error)
}

type coverageUseCaseImpl struct {
	coverageService service.CoverageAreaService
	spotsRepo       repository.TouristSpotsRepository
	config          *model.GeoConfig
}

// NewCoverageUseCase 新しいCoverageUseCaseを作成
func NewCoverageUseCase(
	coverageService service.CoverageAreaService,
	spotsRepo repository.TouristSpotsRepository,
	config *model.GeoConfig,
) CoverageUseCase {
	return &coverageUseCaseImpl{
		coverageService: coverageService,
		spotsRepo:       spotsRepo,
		config:          config,
	}
}

func (u *coverageUseCaseImpl) GetCoverage(ctx context.Context, region string, radiusKm, bufferKm float64) (*model.CoverageReport, error) {
	if region != model.RegionAll {
		if _, err := u.config.Region(region); err != nil {
			return nil, err
		}
	}
	if radiusKm <= 0 {
		radiusKm = u.config.DefaultRadiusKm
	}
	if bufferKm <= 0 {
		bufferKm = u.config.DefaultBufferDistanceKm
	}

	spots, err := u.spotsRepo.GetByRegion(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("地域 %s の観光スポット取得失敗: %w", region, err)
	}

	report := &model.CoverageReport{
		Region:           region,
		RadiusKm:         radiusKm,
		BufferDistanceKm: bufferKm,
		TouristAreas:     u.coverageService.CreateTouristAreas(spots, radiusKm),
		BufferAreas:      u.coverageService.CreateBufferAreas(spots, bufferKm),
	}
	if region != model.RegionAll {
		report.StateArea = u.coverageService.CreateStateArea(region, spots)
	}

	log.Printf("✅ カバレッジ計算完了: %s (観光エリア %d, バッファ %d, 合計 %.2f km²)",
		region, len(report.TouristAreas.Features), len(report.BufferAreas.Features), report.TouristAreas.TotalAreaKm2)
	return report, nil
}
