package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
	"TouristMap-App/internal/infrastructure/cache"
	"TouristMap-App/internal/infrastructure/metrics"
)

const hexGridKeyPrefix = "touristmap:hexgrid:"

// RedisHexGridCache 生成済みグリッドをRedisにJSONで保持する
type RedisHexGridCache struct {
	client     *redis.Client
	ttl        time.Duration
	thresholds model.DensityThresholds
}

// NewRedisHexGridCache Redisキャッシュを作成
func NewRedisHexGridCache(rc *cache.RedisClient, ttl time.Duration, thresholds model.DensityThresholds) repository.HexGridCache {
	return &RedisHexGridCache{
		client:     rc.GetClient(),
		ttl:        ttl,
		thresholds: thresholds,
	}
}

// HexGridCacheKey 地域とセル辺長からキャッシュキーを作る
func HexGridCacheKey(region string, cellSideKm float64) string {
	return fmt.Sprintf("%s:%g", region, cellSideKm)
}

func (c *RedisHexGridCache) Get(ctx context.Context, key string) ([]*model.HexCell, error) {
	data, err := c.client.Get(ctx, hexGridKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheMissesTotal.Inc()
			return nil, repository.ErrCacheMiss
		}
		return nil, fmt.Errorf("グリッドキャッシュの取得失敗: %w", err)
	}

	var records []model.HexCellRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("グリッドキャッシュのJSONアンマーシャル失敗: %w", err)
	}
	metrics.CacheHitsTotal.Inc()
	return RecordsToHexCells(records, c.thresholds), nil
}

func (c *RedisHexGridCache) Set(ctx context.Context, key string, cells []*model.HexCell) error {
	records := make([]*model.HexCellRecord, 0, len(cells))
	for _, cell := range cells {
		records = append(records, cell.ToRecord())
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("グリッドキャッシュのJSONマーシャル失敗: %w", err)
	}
	if err := c.client.Set(ctx, hexGridKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("グリッドキャッシュの保存失敗: %w", err)
	}
	return nil
}

func (c *RedisHexGridCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, hexGridKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("グリッドキャッシュの削除失敗: %w", err)
	}
	return nil
}
