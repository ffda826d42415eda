package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/uber/h3-go/v4"
)

// CellIndex 点を含むH3セルのインデックス文字列
func (p *OrbProvider) CellIndex(pt orb.Point) (string, error) {
	if err := validateCenter(pt); err != nil {
		return "", err
	}
	cell, err := h3.LatLngToCell(h3.NewLatLng(pt.Lat(), pt.Lon()), p.h3Resolution)
	if err != nil {
		return "", fmt.Errorf("H3インデックスの計算に失敗: %w", err)
	}
	return cell.String(), nil
}
