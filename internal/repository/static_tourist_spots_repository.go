package repository

import (
	"context"
	"fmt"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
)

// StaticTouristSpotsRepository 組み込みテーブルを返すリポジトリ
type StaticTouristSpotsRepository struct {
	spots []*model.TouristSpot
}

// NewStaticTouristSpotsRepository 組み込みデータのリポジトリを作成
func NewStaticTouristSpotsRepository() repository.TouristSpotsRepository {
	return &StaticTouristSpotsRepository{spots: DefaultTouristSpots()}
}

// NewStaticTouristSpotsRepositoryWith 任意のスポット一覧でリポジトリを作成
func NewStaticTouristSpotsRepositoryWith(spots []*model.TouristSpot) repository.TouristSpotsRepository {
	return &StaticTouristSpotsRepository{spots: spots}
}

func (r *StaticTouristSpotsRepository) GetAll(ctx context.Context) ([]*model.TouristSpot, error) {
	result := make([]*model.TouristSpot, len(r.spots))
	copy(result, r.spots)
	return result, nil
}

func (r *StaticTouristSpotsRepository) GetByID(ctx context.Context, id int) (*model.TouristSpot, error) {
	for _, s := range r.spots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: ID %d", model.ErrSpotNotFound, id)
}

func (r *StaticTouristSpotsRepository) GetByRegion(ctx context.Context, region string) ([]*model.TouristSpot, error) {
	return r.filter(func(s *model.TouristSpot) bool {
		return region == model.RegionAll || s.Region == region
	}), nil
}

func (r *StaticTouristSpotsRepository) GetByCategory(ctx context.Context, category string) ([]*model.TouristSpot, error) {
	return r.filter(func(s *model.TouristSpot) bool { return s.Category == category }), nil
}

func (r *StaticTouristSpotsRepository) GetByBoundingBox(ctx context.Context, box model.BoundingBox) ([]*model.TouristSpot, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	return r.filter(func(s *model.TouristSpot) bool { return box.Contains(s.Coords) }), nil
}

func (r *StaticTouristSpotsRepository) filter(keep func(*model.TouristSpot) bool) []*model.TouristSpot {
	result := make([]*model.TouristSpot, 0)
	for _, s := range r.spots {
		if keep(s) {
			result = append(result, s)
		}
	}
	return result
}
