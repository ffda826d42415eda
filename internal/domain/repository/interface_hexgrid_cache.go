package repository

import (
	"context"
	"errors"

	"TouristMap-App/internal/domain/model"
)

// ErrCacheMiss キャッシュに値が無い
var ErrCacheMiss = errors.New("hex grid cache miss")

// HexGridCache 生成済みグリッドのキャッシュ
type HexGridCache interface {
	// Get キャッシュが無ければ ErrCacheMiss を返す
	Get(ctx context.Context, key string) ([]*model.HexCell, error)
	Set(ctx context.Context, key string, cells []*model.HexCell) error
	Delete(ctx context.Context, key string) error
}
