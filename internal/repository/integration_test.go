package repository

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TouristMap-App/internal/domain/model"
	domainRepo "TouristMap-App/internal/domain/repository"
	"TouristMap-App/internal/infrastructure/cache"
	"TouristMap-App/internal/infrastructure/database"
	"TouristMap-App/internal/infrastructure/firestore"
)

// loadTestEnv .env があれば読み込む（無ければ環境変数のみ）
func loadTestEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			return
		}
	}
}

func TestPostgresTouristSpotsRepository_Integration(t *testing.T) {
	loadTestEnv()
	if _, err := database.PostgresConnString(); err != nil {
		t.Skipf("Postgresの接続情報がありません: %v", err)
	}

	client, err := database.NewPostgreSQLClientWithRetry(3, time.Second)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	repo := NewPostgresTouristSpotsRepository(client)

	spots, err := repo.GetAll(ctx)
	require.NoError(t, err)
	log.Printf("📋 取得された観光スポット数: %d", len(spots))

	for _, s := range spots {
		assert.True(t, s.Coords.IsValid(), s.Name)
	}

	if len(spots) > 0 {
		got, err := repo.GetByID(ctx, spots[0].ID)
		require.NoError(t, err)
		assert.Equal(t, spots[0].Name, got.Name)
	}

	_, err = repo.GetByID(ctx, -1)
	assert.True(t, errors.Is(err, model.ErrSpotNotFound))
}

func TestFirestoreGeofenceSnapshotRepository_Integration(t *testing.T) {
	loadTestEnv()
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID が設定されていません")
	}

	ctx := context.Background()
	client, err := firestore.NewFirestoreClient(ctx, projectID)
	require.NoError(t, err)
	defer client.Close()

	repo := NewFirestoreGeofenceSnapshotRepository(client.GetClient())
	saved, err := repo.Save(ctx, &model.GeofenceSnapshot{
		Region:       model.RegionMeghalaya,
		MinDensity:   1,
		CellSideKm:   10,
		HexagonCount: 3,
		AreaKm2:      780.5,
		GeoJSON:      `{"type":"FeatureCollection","features":[]}`,
	}, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.SnapshotID)

	got, err := repo.Get(ctx, saved.SnapshotID)
	require.NoError(t, err)
	assert.Equal(t, saved.AreaKm2, got.AreaKm2)
	assert.Equal(t, model.RegionMeghalaya, got.Region)

	_, err = repo.Get(ctx, "geofence_does_not_exist")
	assert.True(t, errors.Is(err, model.ErrSnapshotNotFound))
}

func TestRedisHexGridCache_Integration(t *testing.T) {
	loadTestEnv()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR が設定されていません")
	}

	ctx := context.Background()
	rc, err := cache.NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer rc.Close()

	thresholds := model.DefaultDensityThresholds()
	c := NewRedisHexGridCache(rc, time.Minute, thresholds)
	key := HexGridCacheKey("integration-test", 10)
	require.NoError(t, c.Delete(ctx, key))

	_, err = c.Get(ctx, key)
	assert.True(t, errors.Is(err, domainRepo.ErrCacheMiss))

	cell := &model.HexCell{
		ID:       model.HexCellID(0),
		Geometry: model.NewBoundingBox(91, 25, 91.1, 25.1).Bound().ToPolygon(),
		Properties: model.HexCellProperties{
			Density: 9,
			Region:  model.RegionMeghalaya,
		},
	}
	require.NoError(t, c.Set(ctx, key, []*model.HexCell{cell}))

	cells, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, model.DensityHigh, cells[0].Properties.DensityClass)
	require.NoError(t, c.Delete(ctx, key))
}

func TestSupabaseHexCellsRepository_Integration(t *testing.T) {
	loadTestEnv()
	url, key := os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_ANON_KEY")
	if url == "" || key == "" {
		t.Skip("SUPABASE_URL または SUPABASE_ANON_KEY が設定されていません")
	}

	client, err := database.NewSupabaseClient(url, key)
	require.NoError(t, err)
	repo := NewSupabaseHexCellsRepository(client, model.DefaultDensityThresholds())

	ctx := context.Background()
	region := "integration-test"
	newCell := func(i int) *model.HexCell {
		return &model.HexCell{
			ID:       model.HexCellID(i),
			Geometry: model.NewBoundingBox(float64(i), 0, float64(i)+1, 1).Bound().ToPolygon(),
			Properties: model.HexCellProperties{
				Density: i,
				Region:  region,
			},
		}
	}

	require.NoError(t, repo.ReplaceRegion(ctx, region, 10, []*model.HexCell{newCell(0), newCell(1), newCell(2)}))
	require.NoError(t, repo.ReplaceRegion(ctx, region, 10, []*model.HexCell{newCell(0), newCell(1)}))

	cells, err := repo.GetByRegion(ctx, region, 10)
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, "hex-0", cells[0].ID)
	assert.Equal(t, "hex-1", cells[1].ID)

	other, err := repo.GetByRegion(ctx, region, 25)
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, repo.ReplaceRegion(ctx, region, 10, nil))
}
