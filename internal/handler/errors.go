package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/usecase"
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// statusFor エラーの種類からステータスコードを決める
func statusFor(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, model.ErrInvalidBoundingBox),
		errors.Is(err, usecase.ErrInvalidMinDensity):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnknownRegion),
		errors.Is(err, model.ErrHexagonNotFound),
		errors.Is(err, model.ErrSpotNotFound),
		errors.Is(err, model.ErrSnapshotNotFound),
		errors.Is(err, model.ErrNotificationMissing):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrSnapshotsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError エラーをJSONで返す
func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s %s: %s: %v", c.Request.Method, c.FullPath(), message, err)
	}
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

// queryFloat 省略時は def を返す
func queryFloat(c *gin.Context, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ValidationError{Field: name, Message: "数値で指定してください"}
	}
	return v, nil
}

// queryInt 省略時は def を返す
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: name, Message: "整数で指定してください"}
	}
	return v, nil
}

// queryCoordinate lng, lat クエリから座標を作る
func queryCoordinate(c *gin.Context) (model.Coordinate, error) {
	if c.Query("lng") == "" || c.Query("lat") == "" {
		return model.Coordinate{}, &ValidationError{Field: "lng,lat", Message: "経度と緯度は必須です"}
	}
	lng, err := queryFloat(c, "lng", 0)
	if err != nil {
		return model.Coordinate{}, err
	}
	lat, err := queryFloat(c, "lat", 0)
	if err != nil {
		return model.Coordinate{}, err
	}
	if lat < -90 || lat > 90 {
		return model.Coordinate{}, &ValidationError{Field: "lat", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if lng < -180 || lng > 180 {
		return model.Coordinate{}, &ValidationError{Field: "lng", Message: "経度は-180から180の範囲で指定してください"}
	}
	return model.NewCoordinate(lng, lat), nil
}

// parseBBox "min_lng,min_lat,max_lng,max_lat" 形式を解析する
func parseBBox(raw string) (model.BoundingBox, error) {
	if raw == "" {
		return model.BoundingBox{}, &ValidationError{Field: "bbox", Message: "bbox parameter is required (format: min_lng,min_lat,max_lng,max_lat)"}
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return model.BoundingBox{}, &ValidationError{Field: "bbox", Message: "bbox must contain 4 coordinates: min_lng,min_lat,max_lng,max_lat"}
	}
	names := [4]string{"min_lng", "min_lat", "max_lng", "max_lat"}
	var box model.BoundingBox
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.BoundingBox{}, &ValidationError{Field: "bbox", Message: fmt.Sprintf("Invalid %s value", names[i])}
		}
		box[i] = v
	}
	if err := box.Validate(); err != nil {
		return model.BoundingBox{}, err
	}
	return box, nil
}

// regionParam 地域の指定が無ければ "all"
func regionParam(c *gin.Context) string {
	if r := c.Param("region"); r != "" {
		return r
	}
	if r := c.Query("region"); r != "" {
		return r
	}
	return model.RegionAll
}
