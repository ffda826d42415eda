package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
	"TouristMap-App/internal/domain/service"
)

// ErrSnapshotsDisabled スナップショット保存先が設定されていない
var ErrSnapshotsDisabled = errors.New("geofence snapshots are not configured")

// ErrInvalidMinDensity しきい値が負
var ErrInvalidMinDensity = errors.New("min density must be zero or greater")

// GeofenceUseCase 州グリッドからジオフェンスを作成・参照するユースケース
type GeofenceUseCase interface {
	// GetGeofence グリッドと現在のしきい値でのジオフェンスを返す
	GetGeofence(ctx context.Context, region string, cellSideKm float64) (*model.GeofenceResponse, error)
	// UpdateMinDensity しきい値を変えてジオフェンスを作り直す
	UpdateMinDensity(ctx context.Context, region string, minDensity int) (*model.GeofenceResponse, error)
	Contains(ctx context.Context, region string, point model.Coordinate) (bool, error)
	Area(ctx context.Context, region string) (float64, error)
	SaveSnapshot(ctx context.Context, region string) (*model.GeofenceSnapshot, error)
	GetSnapshot(ctx context.Context, snapshotID string) (*model.GeofenceSnapshot, error)
}

// geofenceEntry 地域ごとのジオフェンス計算結果
type geofenceEntry struct {
	minDensity   int
	gridVersion  int64
	cellSideKm   float64
	geofence     *model.GeofenceCollection
	gridStats    *model.HexagonStats
	gridFeatures interface{}
}

type geofenceUseCaseImpl struct {
	hexagons        HexagonUseCase
	geofenceService service.GeofenceService
	snapshotRepo    repository.GeofenceSnapshotRepository
	config          *model.GeoConfig
	snapshotTTL     int

	mu         sync.RWMutex
	minDensity map[string]int
	entries    map[string]*geofenceEntry
}

// NewGeofenceUseCase 新しいGeofenceUseCaseを作成（snapshotRepo は nil 可）
func NewGeofenceUseCase(
	hexagons HexagonUseCase,
	geofenceService service.GeofenceService,
	snapshotRepo repository.GeofenceSnapshotRepository,
	config *model.GeoConfig,
	snapshotTTLHours int,
) GeofenceUseCase {
	return &geofenceUseCaseImpl{
		hexagons:        hexagons,
		geofenceService: geofenceService,
		snapshotRepo:    snapshotRepo,
		config:          config,
		snapshotTTL:     snapshotTTLHours,
		minDensity:      make(map[string]int),
		entries:         make(map[string]*geofenceEntry),
	}
}

func (u *geofenceUseCaseImpl) GetGeofence(ctx context.Context, region string, cellSideKm float64) (*model.GeofenceResponse, error) {
	entry, err := u.compute(ctx, region, cellSideKm)
	if err != nil {
		return nil, err
	}
	return u.response(region, entry), nil
}

func (u *geofenceUseCaseImpl) UpdateMinDensity(ctx context.Context, region string, minDensity int) (*model.GeofenceResponse, error) {
	if minDensity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMinDensity, minDensity)
	}
	if _, err := u.config.Region(region); err != nil {
		return nil, err
	}
	u.mu.Lock()
	u.minDensity[region] = minDensity
	u.mu.Unlock()

	log.Printf("🚀 ジオフェンスしきい値更新: %s → %d", region, minDensity)
	return u.GetGeofence(ctx, region, 0)
}

func (u *geofenceUseCaseImpl) Contains(ctx context.Context, region string, point model.Coordinate) (bool, error) {
	if !point.IsValid() {
		return false, fmt.Errorf("%w: 座標が範囲外です %v", model.ErrInvalidBoundingBox, point)
	}
	entry, err := u.compute(ctx, region, 0)
	if err != nil {
		return false, err
	}
	return u.geofenceService.IsPointInGeofence(entry.geofence, point), nil
}

func (u *geofenceUseCaseImpl) Area(ctx context.Context, region string) (float64, error) {
	entry, err := u.compute(ctx, region, 0)
	if err != nil {
		return 0, err
	}
	return u.geofenceService.GeofenceArea(entry.geofence), nil
}

func (u *geofenceUseCaseImpl) SaveSnapshot(ctx context.Context, region string) (*model.GeofenceSnapshot, error) {
	if u.snapshotRepo == nil {
		return nil, ErrSnapshotsDisabled
	}
	entry, err := u.compute(ctx, region, 0)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(entry.geofence.ToFeatureCollection())
	if err != nil {
		return nil, fmt.Errorf("ジオフェンスのGeoJSON変換失敗: %w", err)
	}
	snapshot := &model.GeofenceSnapshot{
		Region:     region,
		MinDensity: entry.minDensity,
		CellSideKm: entry.cellSideKm,
		AreaKm2:    u.geofenceService.GeofenceArea(entry.geofence),
		GeoJSON:    string(data),
	}
	if gf := entry.geofence.First(); gf != nil {
		snapshot.HexagonCount = gf.HexagonCount
		snapshot.TotalTouristSpots = gf.TotalTouristSpots
		snapshot.SkippedHexagons = gf.SkippedHexagons
	}
	return u.snapshotRepo.Save(ctx, snapshot, u.snapshotTTL)
}

func (u *geofenceUseCaseImpl) GetSnapshot(ctx context.Context, snapshotID string) (*model.GeofenceSnapshot, error) {
	if u.snapshotRepo == nil {
		return nil, ErrSnapshotsDisabled
	}
	return u.snapshotRepo.Get(ctx, snapshotID)
}

// compute グリッドかしきい値が変わったときだけ結合し直す
func (u *geofenceUseCaseImpl) compute(ctx context.Context, region string, cellSideKm float64) (*geofenceEntry, error) {
	state, err := u.hexagons.RegionState(ctx, region, cellSideKm)
	if err != nil {
		return nil, err
	}
	minDensity := u.currentMinDensity(region)

	u.mu.RLock()
	entry, ok := u.entries[region]
	u.mu.RUnlock()
	if ok && entry.gridVersion == state.Version && entry.minDensity == minDensity && entry.cellSideKm == state.CellSideKm {
		return entry, nil
	}

	entry = &geofenceEntry{
		minDensity:   minDensity,
		gridVersion:  state.Version,
		cellSideKm:   state.CellSideKm,
		geofence:     u.geofenceService.CreateGeofence(state.Cells, minDensity, region),
		gridStats:    state.Stats,
		gridFeatures: model.HexCellsToFeatureCollection(state.Cells),
	}

	u.mu.Lock()
	u.entries[region] = entry
	u.mu.Unlock()
	return entry, nil
}

func (u *geofenceUseCaseImpl) currentMinDensity(region string) int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if v, ok := u.minDensity[region]; ok {
		return v
	}
	return u.config.DefaultMinDensity
}

func (u *geofenceUseCaseImpl) response(region string, entry *geofenceEntry) *model.GeofenceResponse {
	return &model.GeofenceResponse{
		Region:     region,
		MinDensity: entry.minDensity,
		CellSideKm: entry.cellSideKm,
		AreaKm2:    u.geofenceService.GeofenceArea(entry.geofence),
		Stats:      entry.gridStats,
		Hexagons:   entry.gridFeatures,
		Geofence:   entry.geofence.ToFeatureCollection(),
	}
}
