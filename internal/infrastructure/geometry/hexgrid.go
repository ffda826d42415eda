package geometry

import (
	"fmt"
	"math"

	"TouristMap-App/internal/domain/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// HexGrid 境界ボックスをフラットトップの六角形でタイル分割する
// セルは x 列ごとに下から上へ列挙され、同じ入力なら常に同じ順序になる
func (p *OrbProvider) HexGrid(box model.BoundingBox, cellSideKm float64) ([]orb.Polygon, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if cellSideKm <= 0 || math.IsNaN(cellSideKm) || math.IsInf(cellSideKm, 0) {
		return nil, fmt.Errorf("%w: %v km", ErrInvalidCellSize, cellSideKm)
	}

	west, south, east, north := box[0], box[1], box[2], box[3]
	centerY := (south + north) / 2
	centerX := (west + east) / 2

	// km単位のセルサイズを度に換算する
	xDistanceKm := geo.DistanceHaversine(orb.Point{west, centerY}, orb.Point{east, centerY}) / 1000
	yDistanceKm := geo.DistanceHaversine(orb.Point{centerX, south}, orb.Point{centerX, north}) / 1000
	if xDistanceKm == 0 || yDistanceKm == 0 {
		return nil, fmt.Errorf("%w: 境界ボックスの幅または高さが0です", model.ErrInvalidBoundingBox)
	}

	cellWidth := cellSideKm * 2 / xDistanceKm * (east - west)
	cellHeight := cellSideKm * 2 / yDistanceKm * (north - south)

	radius := cellWidth / 2
	hexWidth := radius * 2
	hexHeight := math.Sqrt(3) / 2 * cellHeight

	boxWidth := east - west
	boxHeight := north - south

	xInterval := 3.0 / 4.0 * hexWidth
	yInterval := hexHeight

	xCount := int(math.Floor((boxWidth - hexWidth) / (hexWidth - radius/2)))
	xAdjust := ((float64(xCount)*xInterval-radius/2)-boxWidth)/2 - radius/2 + xInterval/2

	yCount := int(math.Floor((boxHeight - hexHeight) / hexHeight))
	yAdjust := (boxHeight - float64(yCount)*hexHeight) / 2

	hasOffsetY := float64(yCount)*hexHeight-boxHeight > hexHeight/2
	if hasOffsetY {
		yAdjust -= hexHeight / 4
	}

	// 箱より大きいセルはタイルできない
	if xCount < 0 || yCount < 0 {
		return []orb.Polygon{}, nil
	}
	if (xCount+1)*(yCount+1) > maxHexCells {
		return nil, fmt.Errorf("%w: %d x %d", ErrTooManyCells, xCount+1, yCount+1)
	}

	var cosines, sines [6]float64
	for i := 0; i < 6; i++ {
		angle := 2 * math.Pi / 6 * float64(i)
		cosines[i] = math.Cos(angle)
		sines[i] = math.Sin(angle)
	}

	cells := make([]orb.Polygon, 0, (xCount+1)*(yCount+1))
	for x := 0; x <= xCount; x++ {
		for y := 0; y <= yCount; y++ {
			isOdd := x%2 == 1
			if y == 0 && isOdd {
				continue
			}
			if y == 0 && hasOffsetY {
				continue
			}

			cx := float64(x)*xInterval + west - xAdjust
			cy := float64(y)*yInterval + south + yAdjust
			if isOdd {
				cy -= hexHeight / 2
			}

			cells = append(cells, hexagon(orb.Point{cx, cy}, cellWidth/2, cellHeight/2, cosines, sines))
		}
	}

	return cells, nil
}

// hexagon 中心と半径から閉じたリング（反時計回り）を作る
// 隣接セルの共有頂点が一致するよう座標は coordinatePrecision に丸める
func hexagon(center orb.Point, rx, ry float64, cosines, sines [6]float64) orb.Polygon {
	ring := make(orb.Ring, 0, 7)
	for i := 0; i < 6; i++ {
		ring = append(ring, orb.Point{
			snapCoordinate(center[0] + rx*cosines[i]),
			snapCoordinate(center[1] + ry*sines[i]),
		})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// coordinatePrecision グリッド頂点の丸め単位の逆数（1e-9度）
const coordinatePrecision = 1e9

func snapCoordinate(v float64) float64 {
	return math.Round(v*coordinatePrecision) / coordinatePrecision
}
