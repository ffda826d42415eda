package service

import (
	"TouristMap-App/internal/domain/model"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

const (
	// pointTolerance 点を R-tree に入れる際の矩形の半幅（度）
	pointTolerance = 1e-9
	// queryPadding 検索矩形の余白。rtreego は接するだけの矩形を交差とみなさない
	queryPadding = 1e-7
)

// spotEntry R-tree に格納するスポット
type spotEntry struct {
	spot *model.TouristSpot
	rect rtreego.Rect
}

// Bounds rtreego.Spatial の実装
func (e *spotEntry) Bounds() rtreego.Rect {
	return e.rect
}

// SpotIndex スポット座標の R-tree 索引
// 候補抽出にのみ使い、最終判定は点の内外判定で行う
type SpotIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSpotIndex スポット一覧から索引を作成（不正な座標のスポットは除外）
func NewSpotIndex(spots []*model.TouristSpot) *SpotIndex {
	entries := make([]rtreego.Spatial, 0, len(spots))
	for _, s := range spots {
		if s == nil || !s.Coords.IsValid() {
			continue
		}
		entries = append(entries, &spotEntry{
			spot: s,
			rect: rtreego.Point{s.Coords.Lng(), s.Coords.Lat()}.ToRect(pointTolerance),
		})
	}
	return &SpotIndex{
		tree: rtreego.NewTree(2, 25, 50, entries...),
		size: len(entries),
	}
}

// Len 索引に含まれるスポット数
func (i *SpotIndex) Len() int {
	return i.size
}

// Candidates 境界ボックスと交差する可能性のあるスポット
func (i *SpotIndex) Candidates(bound orb.Bound) []*model.TouristSpot {
	if i.size == 0 {
		return nil
	}
	bound = bound.Pad(queryPadding)
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{bound.Min[0], bound.Min[1]},
		rtreego.Point{bound.Max[0], bound.Max[1]},
	)
	if err != nil {
		return nil
	}
	found := i.tree.SearchIntersect(rect)
	spots := make([]*model.TouristSpot, 0, len(found))
	for _, f := range found {
		spots = append(spots, f.(*spotEntry).spot)
	}
	return spots
}

