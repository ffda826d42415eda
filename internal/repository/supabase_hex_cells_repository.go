package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
	"TouristMap-App/internal/infrastructure/database"
)

const hexCellsTable = "hex_cells"

// hexCellsConflictKey hex_cells の一意制約
const hexCellsConflictKey = "region,cell_id"

type SupabaseHexCellsRepository struct {
	client     *database.SupabaseClient
	thresholds model.DensityThresholds
}

func NewSupabaseHexCellsRepository(client *database.SupabaseClient, thresholds model.DensityThresholds) repository.HexCellsRepository {
	return &SupabaseHexCellsRepository{
		client:     client,
		thresholds: thresholds,
	}
}

func (r *SupabaseHexCellsRepository) GetByRegion(ctx context.Context, region string, cellSideKm float64) ([]*model.HexCell, error) {
	data, _, err := r.client.GetClient().From(hexCellsTable).Select("*", "exact", false).
		Eq("region", region).
		Eq("cell_side_km", formatCellSide(cellSideKm)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("地域 %s のセルデータ取得失敗: %w", region, err)
	}

	var records []model.HexCellRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("セルデータのJSONアンマーシャル失敗: %w", err)
	}
	cells := RecordsToHexCells(records, r.thresholds)
	SortHexCells(cells)
	return cells, nil
}

// ReplaceRegion upsert で書き込み、成功した後で今回のIDに含まれない行を削除する
func (r *SupabaseHexCellsRepository) ReplaceRegion(ctx context.Context, region string, cellSideKm float64, cells []*model.HexCell) error {
	keep := make(map[string]struct{}, len(cells))
	if len(cells) > 0 {
		records := make([]*model.HexCellRecord, 0, len(cells))
		for _, c := range cells {
			rec := c.ToRecord()
			rec.Region = region
			rec.CellSideKm = cellSideKm
			records = append(records, rec)
			keep[rec.CellID] = struct{}{}
		}
		_, _, err := r.client.GetClient().From(hexCellsTable).
			Upsert(records, hexCellsConflictKey, "minimal", "").
			Execute()
		if err != nil {
			return fmt.Errorf("セルデータの保存失敗: %w", err)
		}
	}

	stale, err := r.staleCellIDs(region, keep)
	if err != nil {
		return err
	}
	if len(stale) > 0 {
		_, _, err = r.client.GetClient().From(hexCellsTable).Delete("minimal", "").
			Eq("region", region).
			In("cell_id", stale).
			Execute()
		if err != nil {
			return fmt.Errorf("地域 %s の古いセルデータ削除失敗: %w", region, err)
		}
	}

	log.Printf("✅ Saved %d hex cells for region %s (removed %d stale)", len(cells), region, len(stale))
	return nil
}

func (r *SupabaseHexCellsRepository) staleCellIDs(region string, keep map[string]struct{}) ([]string, error) {
	data, _, err := r.client.GetClient().From(hexCellsTable).Select("cell_id", "", false).
		Eq("region", region).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("地域 %s の保存済みセルID取得失敗: %w", region, err)
	}
	var rows []cellIDRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("セルIDのJSONアンマーシャル失敗: %w", err)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CellID)
	}
	return StaleCellIDs(ids, keep), nil
}

type cellIDRow struct {
	CellID string `json:"cell_id"`
}

// StaleCellIDs 保存済みIDのうち今回書き込んでいないもの
func StaleCellIDs(stored []string, keep map[string]struct{}) []string {
	stale := make([]string, 0)
	for _, id := range stored {
		if _, ok := keep[id]; !ok {
			stale = append(stale, id)
		}
	}
	return stale
}

// SortHexCells 保存順に関係なくセルを生成順に並べる
func SortHexCells(cells []*model.HexCell) {
	sort.SliceStable(cells, func(i, j int) bool {
		a, okA := model.HexCellIndex(cells[i].ID)
		b, okB := model.HexCellIndex(cells[j].ID)
		if okA && okB {
			return a < b
		}
		return okA && !okB
	})
}

func formatCellSide(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

// RecordsToHexCells 行データをセルに変換する（壊れた行は読み飛ばす）
func RecordsToHexCells(records []model.HexCellRecord, thresholds model.DensityThresholds) []*model.HexCell {
	cells := make([]*model.HexCell, 0, len(records))
	for i := range records {
		cell, err := records[i].ToHexCell(thresholds)
		if err != nil {
			log.Printf("⚠️ Skipping stored hex cell: %v", err)
			continue
		}
		cells = append(cells, cell)
	}
	return cells
}
