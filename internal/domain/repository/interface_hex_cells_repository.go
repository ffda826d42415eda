package repository

import (
	"context"

	"TouristMap-App/internal/domain/model"
)

// HexCellsRepository 密度付与済みセルの永続化
type HexCellsRepository interface {
	// GetByRegion 指定サイズで保存された地域のセルを生成順で返す（無ければ空）
	GetByRegion(ctx context.Context, region string, cellSideKm float64) ([]*model.HexCell, error)
	// ReplaceRegion 地域のセルを書き込んでから古いセルを削除する
	ReplaceRegion(ctx context.Context, region string, cellSideKm float64, cells []*model.HexCell) error
}
