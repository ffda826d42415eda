package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/usecase"
)

// HexagonHandler 六角形グリッドAPIのハンドラー
type HexagonHandler struct {
	hexagonUseCase usecase.HexagonUseCase
}

// NewHexagonHandler HexagonHandlerの新しいインスタンスを作成
func NewHexagonHandler(hexagonUseCase usecase.HexagonUseCase) *HexagonHandler {
	return &HexagonHandler{
		hexagonUseCase: hexagonUseCase,
	}
}

// GetHexagons GET /api/hexagons?region=all&minDensity=
func (h *HexagonHandler) GetHexagons(c *gin.Context) {
	minDensity, err := queryInt(c, "minDensity", 0)
	if err != nil {
		respondError(c, err, "クエリパラメータが正しくありません")
		return
	}

	resp, err := h.hexagonUseCase.GetHexagons(c.Request.Context(), regionParam(c), minDensity)
	if err != nil {
		respondError(c, err, "六角形グリッドの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStats GET /api/hexagons/stats?region=
func (h *HexagonHandler) GetStats(c *gin.Context) {
	stats, err := h.hexagonUseCase.GetStats(c.Request.Context(), regionParam(c))
	if err != nil {
		respondError(c, err, "統計の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetGroups GET /api/hexagons/groups?region=
func (h *HexagonHandler) GetGroups(c *gin.Context) {
	groups, err := h.hexagonUseCase.GroupByDensity(c.Request.Context(), regionParam(c))
	if err != nil {
		respondError(c, err, "密度グループの取得に失敗しました")
		return
	}

	resp := make(map[model.DensityClass]interface{}, len(groups))
	for class, cells := range groups {
		resp[class] = model.HexCellsToFeatureCollection(cells)
	}
	c.JSON(http.StatusOK, resp)
}

// GetHexagon GET /api/hexagons/:id?region=
func (h *HexagonHandler) GetHexagon(c *gin.Context) {
	cell, err := h.hexagonUseCase.GetHexagon(c.Request.Context(), regionParam(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "セルの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, cell.ToFeature())
}

// GetHexagonsInBounds GET /api/hexagons/bounds?bbox=min_lng,min_lat,max_lng,max_lat
func (h *HexagonHandler) GetHexagonsInBounds(c *gin.Context) {
	box, err := parseBBox(c.Query("bbox"))
	if err != nil {
		respondError(c, err, "bboxが正しくありません")
		return
	}

	cells, err := h.hexagonUseCase.GetHexagonsInBounds(c.Request.Context(), box)
	if err != nil {
		respondError(c, err, "境界ボックス内セルの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, model.HexCellsToFeatureCollection(cells))
}

// Refresh POST /api/hexagons/refresh
func (h *HexagonHandler) Refresh(c *gin.Context) {
	var req model.RefreshHexagonsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "リクエストの形式が正しくありません",
				"details": err.Error(),
			})
			return
		}
	}
	if req.CellSideKm < 0 {
		respondError(c, &ValidationError{Field: "cell_side_km", Message: "0以上で指定してください"}, "バリデーションエラー")
		return
	}
	if req.Region == "" {
		req.Region = model.RegionAll
	}

	resp, err := h.hexagonUseCase.Refresh(c.Request.Context(), req.Region, req.CellSideKm)
	if err != nil {
		respondError(c, err, "六角形グリッドの再生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Simulate POST /api/hexagons/simulate?region=
func (h *HexagonHandler) Simulate(c *gin.Context) {
	resp, err := h.hexagonUseCase.Simulate(c.Request.Context(), regionParam(c))
	if err != nil {
		respondError(c, err, "疑似更新に失敗しました")
		return
	}
	c.JSON(http.StatusOK, resp)
}
