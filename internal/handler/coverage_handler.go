package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TouristMap-App/internal/usecase"
)

// CoverageHandler カバレッジエリアAPIのハンドラー
type CoverageHandler struct {
	coverageUseCase usecase.CoverageUseCase
}

// NewCoverageHandler CoverageHandlerの新しいインスタンスを作成
func NewCoverageHandler(coverageUseCase usecase.CoverageUseCase) *CoverageHandler {
	return &CoverageHandler{
		coverageUseCase: coverageUseCase,
	}
}

// GetCoverage GET /api/coverage/:region?radius=&buffer_distance=
func (h *CoverageHandler) GetCoverage(c *gin.Context) {
	radius, err := queryFloat(c, "radius", 0)
	if err != nil {
		respondError(c, err, "クエリパラメータが正しくありません")
		return
	}
	buffer, err := queryFloat(c, "buffer_distance", 0)
	if err != nil {
		respondError(c, err, "クエリパラメータが正しくありません")
		return
	}
	if radius < 0 || buffer < 0 {
		respondError(c, &ValidationError{Field: "radius,buffer_distance", Message: "0以上で指定してください"}, "クエリパラメータが正しくありません")
		return
	}

	report, err := h.coverageUseCase.GetCoverage(c.Request.Context(), c.Param("region"), radius, buffer)
	if err != nil {
		respondError(c, err, "カバレッジの計算に失敗しました")
		return
	}

	resp := gin.H{
		"region":          report.Region,
		"radius":          report.RadiusKm,
		"buffer_distance": report.BufferDistanceKm,
		"tourist_areas":   report.TouristAreas.ToFeatureCollection(),
		"buffer_areas":    report.BufferAreas.ToFeatureCollection(),
		"stats": gin.H{
			"total_area":            report.TouristAreas.TotalAreaKm2,
			"average_area":          report.TouristAreas.AverageAreaKm2,
			"category_distribution": report.TouristAreas.CategoryDistribution,
			"buffer_total_area":     report.BufferAreas.TotalAreaKm2,
			"failed_spots":          report.TouristAreas.FailedSpots + report.BufferAreas.FailedSpots,
		},
	}
	if report.StateArea != nil {
		resp["state_area"] = report.StateArea.ToFeature()
	}
	c.JSON(http.StatusOK, resp)
}
