package helper

import (
	"sort"

	"TouristMap-App/internal/domain/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DefaultNearestLimit 近傍検索の既定件数
const DefaultNearestLimit = 5

// boundsPadding 地図表示用の余白（幅・高さに対する割合）
const boundsPadding = 0.1

// minBoundsPadding スポットが1件のときなど幅0の場合の最小余白（度）
const minBoundsPadding = 0.05

// CalculateDistance は2地点間の大円距離を計算する (km)
func CalculateDistance(a, b model.Coordinate) float64 {
	return geo.DistanceHaversine(a.Point(), b.Point()) / 1000
}

// FindNearestSpots は指定地点に近い順にスポットを返す
func FindNearestSpots(point model.Coordinate, spots []*model.TouristSpot, limit int) []*model.NearestSpot {
	if limit <= 0 {
		limit = DefaultNearestLimit
	}
	result := make([]*model.NearestSpot, 0, len(spots))
	for _, s := range spots {
		if s == nil {
			continue
		}
		result = append(result, &model.NearestSpot{
			TouristSpot: s,
			DistanceKm:  CalculateDistance(point, s.Coords),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// SpotsBounds はスポット全体を囲む境界ボックスに10%の余白を付けて返す
func SpotsBounds(spots []*model.TouristSpot) (model.BoundingBox, bool) {
	var bound orb.Bound
	found := false
	for _, s := range spots {
		if s == nil {
			continue
		}
		if !found {
			bound = orb.Bound{Min: s.Point(), Max: s.Point()}
			found = true
			continue
		}
		bound = bound.Extend(s.Point())
	}
	if !found {
		return model.BoundingBox{}, false
	}

	box := model.BoundingBoxFromBound(bound).Pad(boundsPadding)
	if box[2]-box[0] < 2*minBoundsPadding {
		box[0] -= minBoundsPadding
		box[2] += minBoundsPadding
	}
	if box[3]-box[1] < 2*minBoundsPadding {
		box[1] -= minBoundsPadding
		box[3] += minBoundsPadding
	}
	return box, true
}

// FilterByRegion は指定地域のスポットのみを抽出する（"all" は全件）
func FilterByRegion(spots []*model.TouristSpot, region string) []*model.TouristSpot {
	if region == "" || region == model.RegionAll {
		return spots
	}
	filtered := make([]*model.TouristSpot, 0)
	for _, s := range spots {
		if s != nil && s.Region == region {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FilterByCategory は指定されたカテゴリのスポットのみを抽出する
func FilterByCategory(spots []*model.TouristSpot, categories []string) []*model.TouristSpot {
	if len(categories) == 0 {
		return spots
	}
	catSet := make(map[string]struct{})
	for _, c := range categories {
		catSet[c] = struct{}{}
	}
	filtered := make([]*model.TouristSpot, 0)
	for _, s := range spots {
		if s == nil {
			continue
		}
		if _, ok := catSet[s.Category]; ok {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FilterByMinRating は評価がしきい値以上のスポットを抽出する
func FilterByMinRating(spots []*model.TouristSpot, minRating float64) []*model.TouristSpot {
	filtered := make([]*model.TouristSpot, 0)
	for _, s := range spots {
		if s != nil && s.Rating >= minRating {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FindHighestRated は最も評価の高いスポットを見つける
func FindHighestRated(spots []*model.TouristSpot) *model.TouristSpot {
	var highest *model.TouristSpot
	for _, s := range spots {
		if s == nil {
			continue
		}
		if highest == nil || s.Rating > highest.Rating {
			highest = s
		}
	}
	return highest
}

// UniqueRegions は出現順に地域タグを重複なく返す
func UniqueRegions(spots []*model.TouristSpot) []string {
	seen := make(map[string]struct{})
	regions := make([]string, 0)
	for _, s := range spots {
		if s == nil {
			continue
		}
		if _, ok := seen[s.Region]; ok {
			continue
		}
		seen[s.Region] = struct{}{}
		regions = append(regions, s.Region)
	}
	return regions
}

// SortByRating は評価の高い順にスポットスライスをソートする
func SortByRating(spots []*model.TouristSpot) {
	sort.SliceStable(spots, func(i, j int) bool {
		return spots[i].Rating > spots[j].Rating
	})
}
