package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TouristMap-App/internal/infrastructure/metrics"
)

// Handlers ルーターに登録するハンドラー一式
type Handlers struct {
	Spots         *SpotsHandler
	Hexagons      *HexagonHandler
	Geofences     *GeofenceHandler
	Coverage      *CoverageHandler
	Notifications *NotificationHandler
}

// SetupRouter 全エンドポイントを登録したGinエンジンを作成
func SetupRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "TouristMap-App",
		})
	})

	spots := api.Group("/spots")
	{
		spots.GET("", h.Spots.GetSpots)
		spots.GET("/nearest", h.Spots.GetNearestSpots)
		spots.GET("/bounds", h.Spots.GetSpotsBounds)
		spots.GET("/:id", h.Spots.GetSpot)
	}

	hexagons := api.Group("/hexagons")
	{
		hexagons.GET("", h.Hexagons.GetHexagons)
		hexagons.GET("/stats", h.Hexagons.GetStats)
		hexagons.GET("/groups", h.Hexagons.GetGroups)
		hexagons.GET("/bounds", h.Hexagons.GetHexagonsInBounds)
		hexagons.GET("/:id", h.Hexagons.GetHexagon)
		hexagons.POST("/refresh", h.Hexagons.Refresh)
		hexagons.POST("/simulate", h.Hexagons.Simulate)
	}

	geofences := api.Group("/geofences")
	{
		geofences.GET("/snapshots/:id", h.Geofences.GetSnapshot)
		geofences.GET("/:region", h.Geofences.GetGeofence)
		geofences.PUT("/:region", h.Geofences.UpdateGeofence)
		geofences.GET("/:region/contains", h.Geofences.Contains)
		geofences.GET("/:region/area", h.Geofences.Area)
		geofences.POST("/:region/snapshots", h.Geofences.SaveSnapshot)
	}

	api.GET("/coverage/:region", h.Coverage.GetCoverage)

	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.Notifications.GetNotifications)
		notifications.POST("", h.Notifications.CreateNotification)
		notifications.POST("/activity", h.Notifications.GenerateActivity)
		notifications.POST("/samples", h.Notifications.GenerateSamples)
		notifications.PATCH("/read", h.Notifications.MarkAllAsRead)
		notifications.PATCH("/:id/read", h.Notifications.MarkAsRead)
		notifications.PATCH("/:id/dismiss", h.Notifications.Dismiss)
		notifications.DELETE("", h.Notifications.ClearAll)
		notifications.DELETE("/dismissed", h.Notifications.ClearDismissed)
		notifications.DELETE("/:id", h.Notifications.Remove)
	}

	return r
}
