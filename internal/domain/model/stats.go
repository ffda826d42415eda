package model

import "math"

// DensityDistribution 密度分類ごとのセル数
type DensityDistribution struct {
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Inactive int `json:"inactive"`
}

// Total 全バケットの合計
func (d DensityDistribution) Total() int {
	return d.High + d.Medium + d.Low + d.Inactive
}

// HexagonStats セル集合の統計
type HexagonStats struct {
	TotalHexagons       int                 `json:"total_hexagons"`
	ActiveHexagons      int                 `json:"active_hexagons"`
	TotalTouristSpots   int                 `json:"total_tourist_spots"`
	AvgDensity          float64             `json:"avg_density"`
	DensityDistribution DensityDistribution `json:"density_distribution"`
}

// RoundTo2 小数第2位に丸める
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
