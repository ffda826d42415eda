package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
	"TouristMap-App/internal/domain/service"
	repoImpl "TouristMap-App/internal/repository"
)

// indiaGridKey インド全体の複合グリッドのキー
const indiaGridKey = "india"

// HexagonState 1つのグリッドの表示状態
type HexagonState struct {
	Cells      []*model.HexCell
	Stats      *model.HexagonStats
	CellSideKm float64
	Version    int64
	UpdatedAt  time.Time
}

// HexagonUseCase 六角形グリッドの生成・保持・参照を行うユースケース
type HexagonUseCase interface {
	// GetHexagons 地域のセルを返す（minDensity 以上のみ）
	GetHexagons(ctx context.Context, region string, minDensity int) (*model.HexagonsResponse, error)
	GetStats(ctx context.Context, region string) (*model.HexagonStats, error)
	GroupByDensity(ctx context.Context, region string) (map[model.DensityClass][]*model.HexCell, error)
	GetHexagon(ctx context.Context, region, id string) (*model.HexCell, error)
	GetHexagonsInBounds(ctx context.Context, box model.BoundingBox) ([]*model.HexCell, error)
	// Refresh グリッドを作り直す（cellSideKm<=0 なら設定値）
	Refresh(ctx context.Context, region string, cellSideKm float64) (*model.HexagonsResponse, error)
	// Simulate 密度を疑似的に揺らした状態に置き換える
	Simulate(ctx context.Context, region string) (*model.HexagonsResponse, error)
	// RegionState 州グリッドの状態を取得（無ければ生成）
	RegionState(ctx context.Context, region string, cellSideKm float64) (*HexagonState, error)
}

type hexagonUseCaseImpl struct {
	hexGridService service.HexGridService
	spotsRepo      repository.TouristSpotsRepository
	cellsRepo      repository.HexCellsRepository
	cache          repository.HexGridCache
	config         *model.GeoConfig

	mu     sync.RWMutex
	states map[string]*HexagonState
	rngMu  sync.Mutex
	rng    *rand.Rand
}

// NewHexagonUseCase 新しいHexagonUseCaseを作成（cellsRepo, cache は nil 可）
func NewHexagonUseCase(
	hexGridService service.HexGridService,
	spotsRepo repository.TouristSpotsRepository,
	cellsRepo repository.HexCellsRepository,
	cache repository.HexGridCache,
	config *model.GeoConfig,
	rng *rand.Rand,
) HexagonUseCase {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &hexagonUseCaseImpl{
		hexGridService: hexGridService,
		spotsRepo:      spotsRepo,
		cellsRepo:      cellsRepo,
		cache:          cache,
		config:         config,
		states:         make(map[string]*HexagonState),
		rng:            rng,
	}
}

func (u *hexagonUseCaseImpl) GetHexagons(ctx context.Context, region string, minDensity int) (*model.HexagonsResponse, error) {
	state, cells, err := u.regionCells(ctx, region)
	if err != nil {
		return nil, err
	}
	if minDensity > 0 {
		cells = service.GetHexagonsByDensity(cells, minDensity)
	}
	return u.response(region, state, cells), nil
}

func (u *hexagonUseCaseImpl) GetStats(ctx context.Context, region string) (*model.HexagonStats, error) {
	_, cells, err := u.regionCells(ctx, region)
	if err != nil {
		return nil, err
	}
	return service.GetHexagonStats(cells, u.config.Thresholds), nil
}

func (u *hexagonUseCaseImpl) GroupByDensity(ctx context.Context, region string) (map[model.DensityClass][]*model.HexCell, error) {
	_, cells, err := u.regionCells(ctx, region)
	if err != nil {
		return nil, err
	}
	return service.GroupByDensity(cells, u.config.Thresholds), nil
}

// GetHexagon IDは地域ごとに振られるため地域内で探す（"all" は最初に一致したセル）
func (u *hexagonUseCaseImpl) GetHexagon(ctx context.Context, region, id string) (*model.HexCell, error) {
	_, cells, err := u.regionCells(ctx, region)
	if err != nil {
		return nil, err
	}
	cell := service.GetHexagonByID(cells, id)
	if cell == nil {
		return nil, fmt.Errorf("%w: %s/%s", model.ErrHexagonNotFound, region, id)
	}
	return cell, nil
}

func (u *hexagonUseCaseImpl) GetHexagonsInBounds(ctx context.Context, box model.BoundingBox) ([]*model.HexCell, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	_, cells, err := u.regionCells(ctx, model.RegionAll)
	if err != nil {
		return nil, err
	}
	return service.GetHexagonsInBounds(cells, box), nil
}

func (u *hexagonUseCaseImpl) Refresh(ctx context.Context, region string, cellSideKm float64) (*model.HexagonsResponse, error) {
	key, err := u.gridKey(region)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		if err := u.cache.Delete(ctx, u.cacheKey(key, cellSideKm)); err != nil {
			log.Printf("⚠️ グリッドキャッシュ削除失敗 (%s): %v", key, err)
		}
	}
	state, err := u.build(ctx, key, cellSideKm, false)
	if err != nil {
		return nil, err
	}
	state = u.store(key, state)
	return u.response(region, state, u.filterForRegion(key, region, state.Cells)), nil
}

func (u *hexagonUseCaseImpl) Simulate(ctx context.Context, region string) (*model.HexagonsResponse, error) {
	key, err := u.gridKey(region)
	if err != nil {
		return nil, err
	}
	current, err := u.ensure(ctx, key, 0)
	if err != nil {
		return nil, err
	}

	u.rngMu.Lock()
	cells := u.hexGridService.SimulateRealTimeUpdate(current.Cells, u.rng)
	u.rngMu.Unlock()

	next := u.newState(cells, current.CellSideKm)
	next = u.store(key, next)
	return u.response(region, next, u.filterForRegion(key, region, next.Cells)), nil
}

func (u *hexagonUseCaseImpl) RegionState(ctx context.Context, region string, cellSideKm float64) (*HexagonState, error) {
	cfg, err := u.config.Region(region)
	if err != nil {
		return nil, err
	}
	if cellSideKm <= 0 {
		cellSideKm = cfg.CellSideKm
	}
	key := regionGridKey(region)
	u.mu.RLock()
	state, ok := u.states[key]
	u.mu.RUnlock()
	if ok && state.CellSideKm == cellSideKm {
		return state, nil
	}

	state, err = u.build(ctx, key, cellSideKm, true)
	if err != nil {
		return nil, err
	}
	return u.store(key, state), nil
}

// regionCells 地域に対応するグリッドの状態とその地域のセルを返す
func (u *hexagonUseCaseImpl) regionCells(ctx context.Context, region string) (*HexagonState, []*model.HexCell, error) {
	key, err := u.gridKey(region)
	if err != nil {
		return nil, nil, err
	}
	state, err := u.ensure(ctx, key, 0)
	if err != nil {
		return nil, nil, err
	}
	return state, u.filterForRegion(key, region, state.Cells), nil
}

func (u *hexagonUseCaseImpl) filterForRegion(key, region string, cells []*model.HexCell) []*model.HexCell {
	if key == indiaGridKey {
		return service.GetHexagonsByRegion(cells, region)
	}
	return cells
}

// gridKey インドの地域は複合グリッド、州は州ごとのグリッドを使う
func (u *hexagonUseCaseImpl) gridKey(region string) (string, error) {
	if region == "" || region == model.RegionAll {
		return indiaGridKey, nil
	}
	for _, r := range u.config.IndiaRegions {
		if r.Name == region {
			return indiaGridKey, nil
		}
	}
	if _, err := u.config.Region(region); err != nil {
		return "", err
	}
	return regionGridKey(region), nil
}

func regionGridKey(region string) string {
	return "region:" + region
}

func (u *hexagonUseCaseImpl) ensure(ctx context.Context, key string, cellSideKm float64) (*HexagonState, error) {
	u.mu.RLock()
	state, ok := u.states[key]
	u.mu.RUnlock()
	if ok {
		return state, nil
	}

	state, err := u.build(ctx, key, cellSideKm, true)
	if err != nil {
		return nil, err
	}
	return u.store(key, state), nil
}

// build ロックの外でグリッドを計算する（キャッシュ→保存済みセル→生成→保存）
// reuse が false なら保存済みセルを読まずに作り直す
func (u *hexagonUseCaseImpl) build(ctx context.Context, key string, cellSideKm float64, reuse bool) (*HexagonState, error) {
	cacheKey := u.cacheKey(key, cellSideKm)
	if u.cache != nil {
		cells, err := u.cache.Get(ctx, cacheKey)
		if err == nil {
			log.Printf("✅ グリッドキャッシュ使用: %s (%d セル)", cacheKey, len(cells))
			return u.newState(cells, u.effectiveSize(key, cellSideKm)), nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			log.Printf("⚠️ グリッドキャッシュ取得失敗 (%s): %v", cacheKey, err)
		}
	}

	if reuse {
		if cells, ok := u.loadStored(ctx, key, cellSideKm); ok {
			log.Printf("✅ 保存済みセル使用: %s (%d セル)", key, len(cells))
			u.cacheCells(ctx, cacheKey, cells)
			return u.newState(cells, u.effectiveSize(key, cellSideKm)), nil
		}
	}

	spots, err := u.spotsRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("観光スポット取得失敗: %w", err)
	}

	var cells []*model.HexCell
	if key == indiaGridKey {
		cells = u.hexGridService.GenerateIndiaHexGrid(spots, cellSideKm)
	} else {
		cells = u.hexGridService.GenerateRegionHexGrid(key[len("region:"):], spots, cellSideKm)
	}

	u.cacheCells(ctx, cacheKey, cells)
	u.persist(ctx, key, cellSideKm, cells)

	return u.newState(cells, u.effectiveSize(key, cellSideKm)), nil
}

func (u *hexagonUseCaseImpl) cacheCells(ctx context.Context, cacheKey string, cells []*model.HexCell) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, cacheKey, cells); err != nil {
		log.Printf("⚠️ グリッドキャッシュ保存失敗 (%s): %v", cacheKey, err)
	}
}

// regionSize 保存単位（地域とそのセルサイズ）
type regionSize struct {
	region     string
	cellSideKm float64
}

// regionSizes グリッドを構成する地域ごとのセルサイズ（インドは設定順）
func (u *hexagonUseCaseImpl) regionSizes(key string, cellSideKm float64) []regionSize {
	if key != indiaGridKey {
		return []regionSize{{region: key[len("region:"):], cellSideKm: u.effectiveSize(key, cellSideKm)}}
	}
	sizes := make([]regionSize, 0, len(u.config.IndiaRegions))
	for _, r := range u.config.IndiaRegions {
		if r.Name == model.RegionAll {
			continue
		}
		size := r.CellSideKm
		if cellSideKm > 0 {
			size = cellSideKm
		}
		sizes = append(sizes, regionSize{region: r.Name, cellSideKm: size})
	}
	return sizes
}

// loadStored 全地域が同じサイズで保存済みのときだけセルを返す
func (u *hexagonUseCaseImpl) loadStored(ctx context.Context, key string, cellSideKm float64) ([]*model.HexCell, bool) {
	if u.cellsRepo == nil {
		return nil, false
	}
	all := make([]*model.HexCell, 0)
	for _, rs := range u.regionSizes(key, cellSideKm) {
		cells, err := u.cellsRepo.GetByRegion(ctx, rs.region, rs.cellSideKm)
		if err != nil {
			log.Printf("⚠️ 保存済みセル取得失敗 (%s/%s): %v", key, rs.region, err)
			return nil, false
		}
		if len(cells) == 0 {
			return nil, false
		}
		all = append(all, cells...)
	}
	return all, true
}

// persist 地域単位で保存する。失敗しても表示は続ける
func (u *hexagonUseCaseImpl) persist(ctx context.Context, key string, cellSideKm float64, cells []*model.HexCell) {
	if u.cellsRepo == nil {
		return
	}
	byRegion := make(map[string][]*model.HexCell)
	for _, c := range cells {
		byRegion[c.Properties.Region] = append(byRegion[c.Properties.Region], c)
	}
	for _, rs := range u.regionSizes(key, cellSideKm) {
		regionCells, ok := byRegion[rs.region]
		if !ok {
			continue
		}
		if err := u.cellsRepo.ReplaceRegion(ctx, rs.region, rs.cellSideKm, regionCells); err != nil {
			log.Printf("⚠️ セル保存失敗 (%s/%s): %v", key, rs.region, err)
		}
	}
}

func (u *hexagonUseCaseImpl) effectiveSize(key string, cellSideKm float64) float64 {
	if cellSideKm > 0 {
		return cellSideKm
	}
	if key == indiaGridKey {
		if len(u.config.IndiaRegions) > 0 {
			return u.config.IndiaRegions[0].CellSideKm
		}
		return 0
	}
	if cfg, err := u.config.Region(key[len("region:"):]); err == nil {
		return cfg.CellSideKm
	}
	return 0
}

func (u *hexagonUseCaseImpl) cacheKey(key string, cellSideKm float64) string {
	return repoImpl.HexGridCacheKey(key, u.effectiveSize(key, cellSideKm))
}

func (u *hexagonUseCaseImpl) newState(cells []*model.HexCell, cellSideKm float64) *HexagonState {
	return &HexagonState{
		Cells:      cells,
		Stats:      service.GetHexagonStats(cells, u.config.Thresholds),
		CellSideKm: cellSideKm,
	}
}

// store 最後に書いた結果を採用し、バージョンを進める
func (u *hexagonUseCaseImpl) store(key string, state *HexagonState) *HexagonState {
	u.mu.Lock()
	defer u.mu.Unlock()
	if prev, ok := u.states[key]; ok {
		state.Version = prev.Version + 1
	} else {
		state.Version = 1
	}
	state.UpdatedAt = time.Now()
	u.states[key] = state
	return state
}

func (u *hexagonUseCaseImpl) response(region string, state *HexagonState, cells []*model.HexCell) *model.HexagonsResponse {
	if region == "" {
		region = model.RegionAll
	}
	return &model.HexagonsResponse{
		Region:   region,
		Version:  state.Version,
		Stats:    service.GetHexagonStats(cells, u.config.Thresholds),
		Hexagons: model.HexCellsToFeatureCollection(cells),
	}
}
