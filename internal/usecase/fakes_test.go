package usecase

import (
	"context"
	"math/rand"
	"sync"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
	"TouristMap-App/internal/domain/service"
	"TouristMap-App/internal/infrastructure/geometry"
	repoImpl "TouristMap-App/internal/repository"
)

// countingSpotsRepository 呼び出し回数を数えるスポットリポジトリ
type countingSpotsRepository struct {
	repository.TouristSpotsRepository
	mu    sync.Mutex
	calls int
}

func newCountingSpotsRepository() *countingSpotsRepository {
	return &countingSpotsRepository{TouristSpotsRepository: repoImpl.NewStaticTouristSpotsRepository()}
}

func (r *countingSpotsRepository) GetAll(ctx context.Context) ([]*model.TouristSpot, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return r.TouristSpotsRepository.GetAll(ctx)
}

// memoryHexGridCache メモリ上のグリッドキャッシュ
type memoryHexGridCache struct {
	mu    sync.Mutex
	items map[string][]*model.HexCell
	sets  int
}

func newMemoryHexGridCache() *memoryHexGridCache {
	return &memoryHexGridCache{items: make(map[string][]*model.HexCell)}
}

func (c *memoryHexGridCache) Get(ctx context.Context, key string) ([]*model.HexCell, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cells, ok := c.items[key]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return cells, nil
}

func (c *memoryHexGridCache) Set(ctx context.Context, key string, cells []*model.HexCell) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cells
	c.sets++
	return nil
}

func (c *memoryHexGridCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// memoryHexCellsRepository 地域ごとに最後に書いたサイズのセルだけを持つ
type memoryHexCellsRepository struct {
	mu       sync.Mutex
	byRegion map[string]storedCells
	writes   int
}

type storedCells struct {
	cellSideKm float64
	cells      []*model.HexCell
}

func newMemoryHexCellsRepository() *memoryHexCellsRepository {
	return &memoryHexCellsRepository{byRegion: make(map[string]storedCells)}
}

func (r *memoryHexCellsRepository) GetByRegion(ctx context.Context, region string, cellSideKm float64) ([]*model.HexCell, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byRegion[region]
	if !ok || stored.cellSideKm != cellSideKm {
		return []*model.HexCell{}, nil
	}
	return stored.cells, nil
}

func (r *memoryHexCellsRepository) ReplaceRegion(ctx context.Context, region string, cellSideKm float64, cells []*model.HexCell) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byRegion[region] = storedCells{cellSideKm: cellSideKm, cells: cells}
	r.writes++
	return nil
}

func (r *memoryHexCellsRepository) cellsOf(region string) []*model.HexCell {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byRegion[region].cells
}

// memorySnapshotRepository メモリ上のスナップショット保存先
type memorySnapshotRepository struct {
	mu        sync.Mutex
	snapshots map[string]*model.GeofenceSnapshot
}

func newMemorySnapshotRepository() *memorySnapshotRepository {
	return &memorySnapshotRepository{snapshots: make(map[string]*model.GeofenceSnapshot)}
}

func (r *memorySnapshotRepository) Save(ctx context.Context, snapshot *model.GeofenceSnapshot, ttlHours int) (*model.GeofenceSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *snapshot
	saved.SnapshotID = "snap-1"
	r.snapshots[saved.SnapshotID] = &saved
	return &saved, nil
}

func (r *memorySnapshotRepository) Get(ctx context.Context, snapshotID string) (*model.GeofenceSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.snapshots[snapshotID]; ok {
		return s, nil
	}
	return nil, model.ErrSnapshotNotFound
}

// testConfig テストを軽くするため粗いセルを使う設定
func testConfig() *model.GeoConfig {
	cfg := model.DefaultGeoConfig()
	for i := range cfg.IndiaRegions {
		cfg.IndiaRegions[i].CellSideKm = 100
	}
	for i := range cfg.StateRegions {
		cfg.StateRegions[i].CellSideKm = 15
	}
	return cfg
}

type fixture struct {
	config    *model.GeoConfig
	spots     *countingSpotsRepository
	cells     *memoryHexCellsRepository
	cache     *memoryHexGridCache
	snapshots *memorySnapshotRepository
	hexagons  HexagonUseCase
	geofences GeofenceUseCase
	coverage  CoverageUseCase
}

func newFixture(withSnapshots bool) *fixture {
	cfg := testConfig()
	provider := geometry.NewOrbProvider(cfg)
	f := &fixture{
		config: cfg,
		spots:  newCountingSpotsRepository(),
		cells:  newMemoryHexCellsRepository(),
		cache:  newMemoryHexGridCache(),
	}
	f.hexagons = NewHexagonUseCase(
		service.NewHexGridService(provider, cfg),
		f.spots, f.cells, f.cache, cfg, rand.New(rand.NewSource(42)),
	)
	var snapshotRepo repository.GeofenceSnapshotRepository
	if withSnapshots {
		f.snapshots = newMemorySnapshotRepository()
		snapshotRepo = f.snapshots
	}
	f.geofences = NewGeofenceUseCase(f.hexagons, service.NewGeofenceService(provider, cfg), snapshotRepo, cfg, 24)
	f.coverage = NewCoverageUseCase(service.NewCoverageAreaService(provider, cfg), f.spots, cfg)
	return f
}
