package handler

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TouristMap-App/internal/application"
	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/service"
	"TouristMap-App/internal/infrastructure/geometry"
	repoImpl "TouristMap-App/internal/repository"
	"TouristMap-App/internal/usecase"
)

func setupTestRouter(t *testing.T) (*gin.Engine, application.NotificationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := model.DefaultGeoConfig()
	for i := range cfg.IndiaRegions {
		cfg.IndiaRegions[i].CellSideKm = 100
	}
	for i := range cfg.StateRegions {
		cfg.StateRegions[i].CellSideKm = 15
	}

	provider := geometry.NewOrbProvider(cfg)
	spotsRepo := repoImpl.NewStaticTouristSpotsRepository()
	hexagons := usecase.NewHexagonUseCase(service.NewHexGridService(provider, cfg), spotsRepo, nil, nil, cfg, rand.New(rand.NewSource(1)))
	geofences := usecase.NewGeofenceUseCase(hexagons, service.NewGeofenceService(provider, cfg), nil, cfg, 24)
	coverage := usecase.NewCoverageUseCase(service.NewCoverageAreaService(provider, cfg), spotsRepo, cfg)
	notifications := application.NewNotificationService(time.Hour)
	t.Cleanup(notifications.Close)

	return SetupRouter(&Handlers{
		Spots:         NewSpotsHandler(spotsRepo),
		Hexagons:      NewHexagonHandler(hexagons),
		Geofences:     NewGeofenceHandler(geofences),
		Coverage:      NewCoverageHandler(coverage),
		Notifications: NewNotificationHandler(notifications, spotsRepo, application.NewLockedRandom(1)),
	}), notifications
}

func doRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = doRequest(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSpotsEndpoints(t *testing.T) {
	r, _ := setupTestRouter(t)

	t.Run("地域で絞り込める", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/spots?region=meghalaya", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(10), decode(t, w)["count"])
	})

	t.Run("境界ボックスで絞り込める", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/spots?bbox=91.7,25.2,91.75,25.3", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(3), decode(t, w)["count"])

		w = doRequest(r, http.MethodGet, "/api/spots?bbox=91.7,25.2,91.75,25.3&region=manipur", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), decode(t, w)["count"])
	})

	t.Run("不正な境界ボックスは400", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/spots?bbox=92,25,91,26", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doRequest(r, http.MethodGet, "/api/spots?bbox=91,25", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("カテゴリで絞り込める", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/spots?category=cave", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(3), decode(t, w)["count"])

		w = doRequest(r, http.MethodGet, "/api/spots?category=cave&region=meghalaya", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), decode(t, w)["count"])
	})

	t.Run("最寄りスポットを返す", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/spots/nearest?lng=72.83&lat=18.92&limit=2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		spots := decode(t, w)["spots"].([]interface{})
		require.Len(t, spots, 2)
		assert.Equal(t, "Gateway of India", spots[0].(map[string]interface{})["name"])
	})

	t.Run("座標が無ければ400", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/spots/nearest?lng=72.83", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("存在しないIDは404", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/spots/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("境界を返す", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/spots/bounds?region=manipur", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(8), decode(t, w)["spots_count"])
	})
}

func TestHexagonEndpoints(t *testing.T) {
	r, _ := setupTestRouter(t)

	t.Run("グリッドと統計を返す", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/hexagons?region=west", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		hexagons := body["hexagons"].(map[string]interface{})
		assert.Equal(t, "FeatureCollection", hexagons["type"])
		stats := body["stats"].(map[string]interface{})
		assert.Equal(t, float64(len(hexagons["features"].([]interface{}))), stats["total_hexagons"])
	})

	t.Run("統計とグループ", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/hexagons/stats", nil).Code)
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/hexagons/groups?region=south", nil).Code)
	})

	t.Run("IDで取得できる", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/hexagons/hex-0?region=south", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hex-0", decode(t, w)["id"])

		w = doRequest(r, http.MethodGet, "/api/hexagons/hex-99999?region=south", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bboxで絞り込める", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/hexagons/bounds?bbox=72,18,74,20", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequest(r, http.MethodGet, "/api/hexagons/bounds?bbox=72,18,74", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doRequest(r, http.MethodGet, "/api/hexagons/bounds?bbox=74,20,72,18", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("再生成でバージョンが進む", func(t *testing.T) {
		before := decode(t, doRequest(r, http.MethodGet, "/api/hexagons?region=manipur", nil))
		w := doRequest(r, http.MethodPost, "/api/hexagons/refresh", model.RefreshHexagonsRequest{Region: model.RegionManipur})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, before["version"].(float64)+1, decode(t, w)["version"])
	})

	t.Run("疑似更新", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/hexagons/simulate?region=all", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("未知の地域は404", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/hexagons?region=atlantis", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGeofenceEndpoints(t *testing.T) {
	r, _ := setupTestRouter(t)

	t.Run("ジオフェンスを返す", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/geofences/meghalaya", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Greater(t, body["area_km2"].(float64), 0.0)
		geofence := body["geofence"].(map[string]interface{})
		assert.Len(t, geofence["features"].([]interface{}), 1)
	})

	t.Run("スポット上の点は内側", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/geofences/meghalaya/contains?lng=91.7167&lat=25.3", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["inside"])
	})

	t.Run("しきい値を上げると空になる", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/geofences/meghalaya", map[string]int{"min_density": 50})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0.0, decode(t, w)["area_km2"])

		w = doRequest(r, http.MethodGet, "/api/geofences/meghalaya/area", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0.0, decode(t, w)["area_km2"])
	})

	t.Run("しきい値が無ければ400", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/geofences/meghalaya", map[string]int{})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doRequest(r, http.MethodPut, "/api/geofences/meghalaya", map[string]int{"min_density": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("スナップショット未設定は503", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/geofences/meghalaya/snapshots", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		w = doRequest(r, http.MethodGet, "/api/geofences/snapshots/abc", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCoverageEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/coverage/manipur?radius=10&buffer_distance=20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["tourist_areas"].(map[string]interface{})["features"].([]interface{}), 8)
	assert.Len(t, body["buffer_areas"].(map[string]interface{})["features"].([]interface{}), 8)
	assert.NotNil(t, body["state_area"])

	w = doRequest(r, http.MethodGet, "/api/coverage/manipur?radius=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/coverage/atlantis", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	r, svc := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/notifications", model.CreateNotificationRequest{
		Type: model.NotificationWeather, Priority: model.PriorityHigh, Title: "Monsoon Alert",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	t.Run("不正な優先度は400", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/notifications", model.CreateNotificationRequest{Priority: "urgent"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("一覧と未読数", func(t *testing.T) {
		body := decode(t, doRequest(r, http.MethodGet, "/api/notifications", nil))
		assert.Equal(t, float64(1), body["unread_count"])
	})

	t.Run("既読と非表示", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodPatch, "/api/notifications/"+id+"/read", nil).Code)
		assert.Equal(t, 0, svc.UnreadCount())
		assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodPatch, "/api/notifications/"+id+"/dismiss", nil).Code)
		assert.Empty(t, svc.Active())
		assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodPatch, "/api/notifications/missing/read", nil).Code)
	})

	t.Run("非表示の削除と全削除", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, "/api/notifications/dismissed", nil).Code)
		assert.Empty(t, svc.All())

		svc.Add(&model.CreateNotificationRequest{Title: "a"})
		assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodPatch, "/api/notifications/read", nil).Code)
		assert.Equal(t, 0, svc.UnreadCount())
		assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, "/api/notifications", nil).Code)
		assert.Empty(t, svc.All())
	})

	t.Run("アクティビティ通知を生成できる", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/notifications/activity?region=all", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, body["count"], float64(len(svc.All())))
	})
}
