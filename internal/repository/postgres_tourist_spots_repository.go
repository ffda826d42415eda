package repository

import (
	"context"
	"database/sql"
	"fmt"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
	"TouristMap-App/internal/infrastructure/database"
)

const touristSpotColumns = `id, name, ST_AsGeoJSON(location)::jsonb, region, category, description, rating`

type PostgresTouristSpotsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresTouristSpotsRepository(client *database.PostgreSQLClient) repository.TouristSpotsRepository {
	return &PostgresTouristSpotsRepository{
		client: client,
	}
}

// TouristSpotResult SELECT結果を受け取るための構造体
type TouristSpotResult struct {
	ID          int
	Name        string
	Location    string
	Region      string
	Category    string
	Description sql.NullString
	Rating      sql.NullFloat64
}

// ToTouristSpot TouristSpotResultをmodel.TouristSpotに変換
func (tr *TouristSpotResult) ToTouristSpot() (*model.TouristSpot, error) {
	coords, err := ParseGeoPoint(tr.Location)
	if err != nil {
		return nil, fmt.Errorf("スポット %d: %w", tr.ID, err)
	}
	spot := &model.TouristSpot{
		ID:       tr.ID,
		Name:     tr.Name,
		Coords:   coords,
		Region:   tr.Region,
		Category: tr.Category,
	}
	if tr.Description.Valid {
		spot.Description = tr.Description.String
	}
	if tr.Rating.Valid {
		spot.Rating = tr.Rating.Float64
	}
	return spot, nil
}

func (r *PostgresTouristSpotsRepository) GetAll(ctx context.Context) ([]*model.TouristSpot, error) {
	query := `SELECT ` + touristSpotColumns + ` FROM tourist_spots ORDER BY id`
	return r.query(ctx, "全観光スポット", query)
}

func (r *PostgresTouristSpotsRepository) GetByID(ctx context.Context, id int) (*model.TouristSpot, error) {
	query := `SELECT ` + touristSpotColumns + ` FROM tourist_spots WHERE id = $1`

	row := r.client.DB.QueryRowContext(ctx, query, id)

	var result TouristSpotResult
	err := row.Scan(&result.ID, &result.Name, &result.Location, &result.Region,
		&result.Category, &result.Description, &result.Rating)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: ID %d", model.ErrSpotNotFound, id)
		}
		return nil, fmt.Errorf("観光スポットデータの取得失敗: %w", err)
	}

	return result.ToTouristSpot()
}

func (r *PostgresTouristSpotsRepository) GetByRegion(ctx context.Context, region string) ([]*model.TouristSpot, error) {
	if region == model.RegionAll || region == "" {
		return r.GetAll(ctx)
	}
	query := `SELECT ` + touristSpotColumns + ` FROM tourist_spots WHERE region = $1 ORDER BY id`
	return r.query(ctx, fmt.Sprintf("地域 %s の観光スポット", region), query, region)
}

func (r *PostgresTouristSpotsRepository) GetByCategory(ctx context.Context, category string) ([]*model.TouristSpot, error) {
	query := `SELECT ` + touristSpotColumns + ` FROM tourist_spots WHERE category = $1 ORDER BY id`
	return r.query(ctx, fmt.Sprintf("カテゴリ %s の観光スポット", category), query, category)
}

// GetByBoundingBox PostGIS ST_Intersects で境界ボックス内のスポットを取得
func (r *PostgresTouristSpotsRepository) GetByBoundingBox(ctx context.Context, box model.BoundingBox) ([]*model.TouristSpot, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	query := `
		SELECT ` + touristSpotColumns + `
		FROM tourist_spots
		WHERE ST_Intersects(location, ST_MakeEnvelope($1, $2, $3, $4, 4326))
		ORDER BY id`
	return r.query(ctx, "境界ボックス内観光スポット", query, box.MinLng(), box.MinLat(), box.MaxLng(), box.MaxLat())
}

func (r *PostgresTouristSpotsRepository) query(ctx context.Context, label, query string, args ...interface{}) ([]*model.TouristSpot, error) {
	rows, err := r.client.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%sの取得失敗: %w", label, err)
	}
	defer rows.Close()

	spots := make([]*model.TouristSpot, 0)
	for rows.Next() {
		var result TouristSpotResult
		err := rows.Scan(&result.ID, &result.Name, &result.Location, &result.Region,
			&result.Category, &result.Description, &result.Rating)
		if err != nil {
			return nil, fmt.Errorf("観光スポットデータスキャンエラー: %w", err)
		}

		spot, err := result.ToTouristSpot()
		if err != nil {
			return nil, err
		}
		spots = append(spots, spot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%sの読み込みエラー: %w", label, err)
	}

	return spots, nil
}
