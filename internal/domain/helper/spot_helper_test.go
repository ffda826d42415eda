package helper

import (
	"testing"

	"TouristMap-App/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpots() []*model.TouristSpot {
	return []*model.TouristSpot{
		{ID: 1, Name: "Taj Mahal", Coords: model.NewCoordinate(78.0421, 27.1751), Region: model.RegionNorth, Category: model.CategoryMonument, Rating: 4.8},
		{ID: 2, Name: "Gateway of India", Coords: model.NewCoordinate(72.8347, 18.9220), Region: model.RegionWest, Category: model.CategoryMonument, Rating: 4.5},
		{ID: 3, Name: "Mawsmai Cave", Coords: model.NewCoordinate(91.7275, 25.2497), Region: model.RegionMeghalaya, Category: model.CategoryCave, Rating: 4.3},
		{ID: 4, Name: "Qutub Minar", Coords: model.NewCoordinate(77.1855, 28.5245), Region: model.RegionNorth, Category: model.CategoryMonument, Rating: 4.6},
	}
}

func TestCalculateDistance(t *testing.T) {
	t.Run("同一地点は0km", func(t *testing.T) {
		c := model.NewCoordinate(77.2, 28.6)
		assert.Equal(t, 0.0, CalculateDistance(c, c))
	})

	t.Run("デリーとアーグラの距離はおよそ180km", func(t *testing.T) {
		delhi := model.NewCoordinate(77.2090, 28.6139)
		agra := model.NewCoordinate(78.0081, 27.1767)
		assert.InDelta(t, 178, CalculateDistance(delhi, agra), 5)
	})
}

func TestFindNearestSpots(t *testing.T) {
	spots := testSpots()
	delhi := model.NewCoordinate(77.2090, 28.6139)

	t.Run("近い順に件数を制限して返す", func(t *testing.T) {
		nearest := FindNearestSpots(delhi, spots, 2)
		require.Len(t, nearest, 2)
		assert.Equal(t, 4, nearest[0].ID)
		assert.Equal(t, 1, nearest[1].ID)
		assert.Less(t, nearest[0].DistanceKm, nearest[1].DistanceKm)
	})

	t.Run("件数0以下なら既定件数", func(t *testing.T) {
		assert.Len(t, FindNearestSpots(delhi, spots, 0), len(spots))
	})
}

func TestSpotsBounds(t *testing.T) {
	t.Run("全スポットを余白付きで囲む", func(t *testing.T) {
		box, ok := SpotsBounds(testSpots())
		require.True(t, ok)
		for _, s := range testSpots() {
			assert.True(t, box.Contains(s.Coords))
		}
		assert.Less(t, box.MinLng(), 72.8347)
		assert.Greater(t, box.MaxLat(), 28.5245)
	})

	t.Run("1件でも幅のある境界になる", func(t *testing.T) {
		box, ok := SpotsBounds(testSpots()[:1])
		require.True(t, ok)
		assert.NoError(t, box.Validate())
	})

	t.Run("空ならfalse", func(t *testing.T) {
		_, ok := SpotsBounds(nil)
		assert.False(t, ok)
	})
}

func TestFilters(t *testing.T) {
	spots := testSpots()

	t.Run("地域で絞り込む", func(t *testing.T) {
		assert.Len(t, FilterByRegion(spots, model.RegionNorth), 2)
		assert.Len(t, FilterByRegion(spots, model.RegionAll), 4)
		assert.Empty(t, FilterByRegion(spots, model.RegionManipur))
	})

	t.Run("カテゴリで絞り込む", func(t *testing.T) {
		assert.Len(t, FilterByCategory(spots, []string{model.CategoryCave}), 1)
		assert.Len(t, FilterByCategory(spots, []string{model.CategoryCave, model.CategoryMonument}), 4)
		assert.Len(t, FilterByCategory(spots, nil), 4)
	})

	t.Run("評価で絞り込む", func(t *testing.T) {
		assert.Len(t, FilterByMinRating(spots, 4.6), 2)
	})

	t.Run("最高評価のスポット", func(t *testing.T) {
		assert.Equal(t, "Taj Mahal", FindHighestRated(spots).Name)
		assert.Nil(t, FindHighestRated(nil))
	})

	t.Run("地域タグは出現順", func(t *testing.T) {
		assert.Equal(t, []string{model.RegionNorth, model.RegionWest, model.RegionMeghalaya}, UniqueRegions(spots))
	})

	t.Run("評価の高い順に並べる", func(t *testing.T) {
		sorted := testSpots()
		SortByRating(sorted)
		assert.Equal(t, []int{1, 4, 2, 3}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID})
	})
}
