package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Circle 中心から radiusKm の円を steps 頂点で近似する
// 頂点は真北から反時計回りに並ぶ
func (p *OrbProvider) Circle(center orb.Point, radiusKm float64, steps int) (orb.Polygon, error) {
	if err := validateCenter(center); err != nil {
		return nil, err
	}
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, fmt.Errorf("%w: %v km", ErrInvalidRadius, radiusKm)
	}
	if steps < 3 {
		return nil, fmt.Errorf("%w: 頂点数は3以上が必要です (steps=%d)", ErrInvalidGeometry, steps)
	}

	meters := radiusKm * 1000
	ring := make(orb.Ring, 0, steps+1)
	for i := 0; i < steps; i++ {
		bearing := float64(i) * -360 / float64(steps)
		ring = append(ring, geo.PointAtBearingAndDistance(center, bearing, meters))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}, nil
}

// Buffer 点の周囲 distanceKm のバッファゾーンを作る
// 真東から始まり四分円あたり bufferSteps 頂点で反時計回りに一周する
func (p *OrbProvider) Buffer(center orb.Point, distanceKm float64) (orb.Polygon, error) {
	if err := validateCenter(center); err != nil {
		return nil, err
	}
	if distanceKm <= 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return nil, fmt.Errorf("%w: %v km", ErrInvalidRadius, distanceKm)
	}

	n := p.bufferSteps * 4
	meters := distanceKm * 1000
	ring := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		theta := 360 * float64(i) / float64(n)
		ring = append(ring, geo.PointAtBearingAndDistance(center, 90-theta, meters))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}, nil
}

func validateCenter(c orb.Point) error {
	lng, lat := c.Lon(), c.Lat()
	if math.IsNaN(lng) || math.IsNaN(lat) || lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: 中心座標が不正です (%v, %v)", ErrInvalidGeometry, lng, lat)
	}
	return nil
}
