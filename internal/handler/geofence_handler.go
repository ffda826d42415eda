package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/usecase"
)

// GeofenceHandler ジオフェンスAPIのハンドラー
type GeofenceHandler struct {
	geofenceUseCase usecase.GeofenceUseCase
}

// NewGeofenceHandler GeofenceHandlerの新しいインスタンスを作成
func NewGeofenceHandler(geofenceUseCase usecase.GeofenceUseCase) *GeofenceHandler {
	return &GeofenceHandler{
		geofenceUseCase: geofenceUseCase,
	}
}

// GetGeofence GET /api/geofences/:region?size=
func (h *GeofenceHandler) GetGeofence(c *gin.Context) {
	size, err := queryFloat(c, "size", 0)
	if err != nil {
		respondError(c, err, "クエリパラメータが正しくありません")
		return
	}
	if size < 0 {
		respondError(c, &ValidationError{Field: "size", Message: "0以上で指定してください"}, "クエリパラメータが正しくありません")
		return
	}

	resp, err := h.geofenceUseCase.GetGeofence(c.Request.Context(), c.Param("region"), size)
	if err != nil {
		respondError(c, err, "ジオフェンスの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateGeofence PUT /api/geofences/:region
func (h *GeofenceHandler) UpdateGeofence(c *gin.Context) {
	var req model.UpdateGeofenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.geofenceUseCase.UpdateMinDensity(c.Request.Context(), c.Param("region"), *req.MinDensity)
	if err != nil {
		respondError(c, err, "ジオフェンスの更新に失敗しました")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Contains GET /api/geofences/:region/contains?lng=&lat=
func (h *GeofenceHandler) Contains(c *gin.Context) {
	point, err := queryCoordinate(c)
	if err != nil {
		respondError(c, err, "クエリパラメータが正しくありません")
		return
	}

	inside, err := h.geofenceUseCase.Contains(c.Request.Context(), c.Param("region"), point)
	if err != nil {
		respondError(c, err, "ジオフェンス判定に失敗しました")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"region": c.Param("region"),
		"point":  point,
		"inside": inside,
	})
}

// Area GET /api/geofences/:region/area
func (h *GeofenceHandler) Area(c *gin.Context) {
	area, err := h.geofenceUseCase.Area(c.Request.Context(), c.Param("region"))
	if err != nil {
		respondError(c, err, "ジオフェンス面積の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"region":   c.Param("region"),
		"area_km2": area,
	})
}

// SaveSnapshot POST /api/geofences/:region/snapshots
func (h *GeofenceHandler) SaveSnapshot(c *gin.Context) {
	snapshot, err := h.geofenceUseCase.SaveSnapshot(c.Request.Context(), c.Param("region"))
	if err != nil {
		respondError(c, err, "スナップショットの保存に失敗しました")
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// GetSnapshot GET /api/geofences/snapshots/:id
func (h *GeofenceHandler) GetSnapshot(c *gin.Context) {
	snapshot, err := h.geofenceUseCase.GetSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "スナップショットの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
