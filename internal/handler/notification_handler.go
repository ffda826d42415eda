package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"TouristMap-App/internal/application"
	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
)

// sampleStagger サンプル通知を追加する間隔
const sampleStagger = 2 * time.Second

// NotificationHandler 通知フィードAPIのハンドラー
type NotificationHandler struct {
	notificationService application.NotificationService
	spotsRepo           repository.TouristSpotsRepository
	rng                 application.RandomSource
}

// NewNotificationHandler NotificationHandlerの新しいインスタンスを作成
func NewNotificationHandler(
	notificationService application.NotificationService,
	spotsRepo repository.TouristSpotsRepository,
	rng application.RandomSource,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		spotsRepo:           spotsRepo,
		rng:                 rng,
	}
}

// GetNotifications GET /api/notifications?type=&priority=&unread=&active=&sorted=
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	var list []*model.Notification
	switch {
	case c.Query("type") != "":
		list = h.notificationService.ByType(c.Query("type"))
	case c.Query("priority") != "":
		list = h.notificationService.ByPriority(c.Query("priority"))
	case c.Query("unread") == "true":
		list = h.notificationService.Unread()
	case c.Query("active") == "true":
		list = h.notificationService.Active()
	case c.Query("sorted") == "true":
		list = h.notificationService.Sorted()
	default:
		list = h.notificationService.All()
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  h.notificationService.UnreadCount(),
	})
}

// CreateNotification POST /api/notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req model.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}
	if req.Priority != "" && !model.IsValidPriority(req.Priority) {
		respondError(c, &ValidationError{Field: "priority", Message: "high, medium, low のいずれかを指定してください"}, "バリデーションエラー")
		return
	}
	if req.Location != nil && !req.Location.IsValid() {
		respondError(c, &ValidationError{Field: "location", Message: "座標が範囲外です"}, "バリデーションエラー")
		return
	}

	c.JSON(http.StatusCreated, h.notificationService.Add(&req))
}

// MarkAsRead PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	if err := h.notificationService.MarkAsRead(c.Param("id")); err != nil {
		respondError(c, err, "通知の更新に失敗しました")
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllAsRead PATCH /api/notifications/read
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	h.notificationService.MarkAllAsRead()
	c.Status(http.StatusNoContent)
}

// Dismiss PATCH /api/notifications/:id/dismiss
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	if err := h.notificationService.Dismiss(c.Param("id")); err != nil {
		respondError(c, err, "通知の更新に失敗しました")
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove DELETE /api/notifications/:id
func (h *NotificationHandler) Remove(c *gin.Context) {
	if err := h.notificationService.Remove(c.Param("id")); err != nil {
		respondError(c, err, "通知の削除に失敗しました")
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearAll DELETE /api/notifications
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	h.notificationService.ClearAll()
	c.Status(http.StatusNoContent)
}

// ClearDismissed DELETE /api/notifications/dismissed
func (h *NotificationHandler) ClearDismissed(c *gin.Context) {
	h.notificationService.ClearDismissed()
	c.Status(http.StatusNoContent)
}

// GenerateActivity POST /api/notifications/activity?region=
func (h *NotificationHandler) GenerateActivity(c *gin.Context) {
	spots, err := h.spotsRepo.GetByRegion(c.Request.Context(), regionParam(c))
	if err != nil {
		respondError(c, err, "観光スポットの取得に失敗しました")
		return
	}
	created := h.notificationService.GenerateActivityNotifications(spots, h.rng)
	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"count":   len(created),
	})
}

// GenerateSamples POST /api/notifications/samples
func (h *NotificationHandler) GenerateSamples(c *gin.Context) {
	h.notificationService.GenerateSampleNotifications(sampleStagger)
	c.JSON(http.StatusAccepted, gin.H{
		"message": "sample notifications scheduled",
	})
}
