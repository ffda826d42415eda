package service

import "TouristMap-App/internal/domain/model"

// GetHexagonStats セル集合の統計を計算する（空の場合は平均0）
func GetHexagonStats(cells []*model.HexCell, thresholds model.DensityThresholds) *model.HexagonStats {
	stats := &model.HexagonStats{TotalHexagons: len(cells)}
	for _, c := range cells {
		d := c.Properties.Density
		stats.TotalTouristSpots += d
		if d > 0 {
			stats.ActiveHexagons++
		}
		switch thresholds.Classify(d) {
		case model.DensityHigh:
			stats.DensityDistribution.High++
		case model.DensityMedium:
			stats.DensityDistribution.Medium++
		case model.DensityLow:
			stats.DensityDistribution.Low++
		default:
			stats.DensityDistribution.Inactive++
		}
	}
	if stats.TotalHexagons > 0 {
		stats.AvgDensity = model.RoundTo2(float64(stats.TotalTouristSpots) / float64(stats.TotalHexagons))
	}
	return stats
}

// GetHexagonsByRegion 地域で絞り込む（"all" は全件）
func GetHexagonsByRegion(cells []*model.HexCell, region string) []*model.HexCell {
	if region == "" || region == model.RegionAll {
		return cells
	}
	result := make([]*model.HexCell, 0)
	for _, c := range cells {
		if c.Properties.Region == region {
			result = append(result, c)
		}
	}
	return result
}

// GetHexagonsByDensity 密度がしきい値以上のセル
func GetHexagonsByDensity(cells []*model.HexCell, minDensity int) []*model.HexCell {
	result := make([]*model.HexCell, 0)
	for _, c := range cells {
		if c.Properties.Density >= minDensity {
			result = append(result, c)
		}
	}
	return result
}

// GetActiveHexagons 密度が1以上のセル
func GetActiveHexagons(cells []*model.HexCell) []*model.HexCell {
	result := make([]*model.HexCell, 0)
	for _, c := range cells {
		if c.Properties.IsActive {
			result = append(result, c)
		}
	}
	return result
}

// GetHexagonByID IDでセルを検索（見つからなければnil）
func GetHexagonByID(cells []*model.HexCell, id string) *model.HexCell {
	for _, c := range cells {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// GetHexagonsInBounds 外接矩形が境界ボックスと交差するセル
func GetHexagonsInBounds(cells []*model.HexCell, box model.BoundingBox) []*model.HexCell {
	result := make([]*model.HexCell, 0)
	for _, c := range cells {
		if c.Properties.BBox.Intersects(box) {
			result = append(result, c)
		}
	}
	return result
}

// GroupByDensity 密度分類ごとにグループ化
func GroupByDensity(cells []*model.HexCell, thresholds model.DensityThresholds) map[model.DensityClass][]*model.HexCell {
	groups := map[model.DensityClass][]*model.HexCell{
		model.DensityHigh:     {},
		model.DensityMedium:   {},
		model.DensityLow:      {},
		model.DensityInactive: {},
	}
	for _, c := range cells {
		class := thresholds.Classify(c.Properties.Density)
		groups[class] = append(groups[class], c)
	}
	return groups
}
