package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TouristMap-App/internal/domain/model"
)

func TestCoverageUseCase_GetCoverage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	t.Run("スポットごとに円とバッファを作る", func(t *testing.T) {
		report, err := f.coverage.GetCoverage(ctx, model.RegionManipur, 0, 0)
		require.NoError(t, err)

		assert.Equal(t, f.config.DefaultRadiusKm, report.RadiusKm)
		assert.Equal(t, f.config.DefaultBufferDistanceKm, report.BufferDistanceKm)
		assert.Len(t, report.TouristAreas.Features, 8)
		assert.Len(t, report.BufferAreas.Features, 8)
		assert.Equal(t, 0, report.TouristAreas.FailedSpots)

		require.NotNil(t, report.StateArea)
		assert.Equal(t, "Manipur State", report.StateArea.Name)
		assert.Equal(t, 8, report.StateArea.TouristSpotsCount)
	})

	t.Run("半径を大きくすると合計面積が増える", func(t *testing.T) {
		small, err := f.coverage.GetCoverage(ctx, model.RegionManipur, 5, 5)
		require.NoError(t, err)
		large, err := f.coverage.GetCoverage(ctx, model.RegionManipur, 25, 5)
		require.NoError(t, err)
		assert.Greater(t, large.TouristAreas.TotalAreaKm2, small.TouristAreas.TotalAreaKm2)
	})

	t.Run("全体指定では州エリアを作らない", func(t *testing.T) {
		report, err := f.coverage.GetCoverage(ctx, model.RegionAll, 10, 10)
		require.NoError(t, err)
		assert.Nil(t, report.StateArea)
		assert.Len(t, report.TouristAreas.Features, 48)
	})

	t.Run("未知の地域はエラー", func(t *testing.T) {
		_, err := f.coverage.GetCoverage(ctx, "atlantis", 10, 10)
		assert.True(t, errors.Is(err, model.ErrUnknownRegion))
	})
}
