package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"TouristMap-App/internal/domain/helper"
	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
)

// SpotsHandler 観光スポット参照APIのハンドラー
type SpotsHandler struct {
	spotsRepo repository.TouristSpotsRepository
}

// NewSpotsHandler SpotsHandlerの新しいインスタンスを作成
func NewSpotsHandler(spotsRepo repository.TouristSpotsRepository) *SpotsHandler {
	return &SpotsHandler{
		spotsRepo: spotsRepo,
	}
}

// GetSpots GET /api/spots?region=&category=&min_rating=&bbox=
func (h *SpotsHandler) GetSpots(c *gin.Context) {
	minRating, err := queryFloat(c, "min_rating", 0)
	if err != nil {
		respondError(c, err, "クエリパラメータが正しくありません")
		return
	}

	spots, err := h.querySpots(c)
	if err != nil {
		respondError(c, err, "観光スポットの取得に失敗しました")
		return
	}
	if minRating > 0 {
		spots = helper.FilterByMinRating(spots, minRating)
	}

	c.JSON(http.StatusOK, gin.H{
		"spots": spots,
		"count": len(spots),
	})
}

// querySpots bbox 指定時は範囲検索、全地域のカテゴリ指定はカテゴリ検索をリポジトリに任せる
func (h *SpotsHandler) querySpots(c *gin.Context) ([]*model.TouristSpot, error) {
	ctx := c.Request.Context()
	region := regionParam(c)
	category := c.Query("category")

	var spots []*model.TouristSpot
	var err error
	switch {
	case c.Query("bbox") != "":
		box, perr := parseBBox(c.Query("bbox"))
		if perr != nil {
			return nil, perr
		}
		spots, err = h.spotsRepo.GetByBoundingBox(ctx, box)
		if err == nil {
			spots = helper.FilterByRegion(spots, region)
		}
	case category != "" && region == model.RegionAll:
		return h.spotsRepo.GetByCategory(ctx, category)
	default:
		spots, err = h.spotsRepo.GetByRegion(ctx, region)
	}
	if err != nil {
		return nil, err
	}
	if category != "" {
		spots = helper.FilterByCategory(spots, []string{category})
	}
	return spots, nil
}

// GetSpot GET /api/spots/:id
func (h *SpotsHandler) GetSpot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, &ValidationError{Field: "id", Message: "整数で指定してください"}, "パスパラメータが正しくありません")
		return
	}
	spot, err := h.spotsRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "観光スポットの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, spot)
}

// GetNearestSpots GET /api/spots/nearest?lng=&lat=&limit=
func (h *SpotsHandler) GetNearestSpots(c *gin.Context) {
	point, err := queryCoordinate(c)
	if err != nil {
		respondError(c, err, "クエリパラメータが正しくありません")
		return
	}
	limit, err := queryInt(c, "limit", 5)
	if err != nil {
		respondError(c, err, "クエリパラメータが正しくありません")
		return
	}

	spots, err := h.spotsRepo.GetByRegion(c.Request.Context(), regionParam(c))
	if err != nil {
		respondError(c, err, "観光スポットの取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"origin": point,
		"spots":  helper.FindNearestSpots(point, spots, limit),
	})
}

// GetSpotsBounds GET /api/spots/bounds?region=
func (h *SpotsHandler) GetSpotsBounds(c *gin.Context) {
	spots, err := h.spotsRepo.GetByRegion(c.Request.Context(), regionParam(c))
	if err != nil {
		respondError(c, err, "観光スポットの取得に失敗しました")
		return
	}
	box, ok := helper.SpotsBounds(spots)
	if !ok {
		respondError(c, model.ErrSpotNotFound, "対象の観光スポットがありません")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bbox":        box,
		"center":      box.Center(),
		"spots_count": len(spots),
	})
}
