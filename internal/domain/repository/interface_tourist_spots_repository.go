package repository

import (
	"context"

	"TouristMap-App/internal/domain/model"
)

// TouristSpotsRepository 観光スポットの参照データ
type TouristSpotsRepository interface {
	GetAll(ctx context.Context) ([]*model.TouristSpot, error)
	GetByID(ctx context.Context, id int) (*model.TouristSpot, error)
	GetByRegion(ctx context.Context, region string) ([]*model.TouristSpot, error)
	GetByCategory(ctx context.Context, category string) ([]*model.TouristSpot, error)
	GetByBoundingBox(ctx context.Context, box model.BoundingBox) ([]*model.TouristSpot, error)
}
