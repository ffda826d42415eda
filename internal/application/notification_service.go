package application

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"TouristMap-App/internal/domain/helper"
	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/infrastructure/metrics"
)

// RandomSource 通知生成に使う乱数源（*rand.Rand を満たす）
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// NotificationService 通知フィードを管理するサービス
type NotificationService interface {
	// Add 通知を追加する（先頭に挿入）
	Add(req *model.CreateNotificationRequest) *model.Notification
	Remove(id string) error
	Dismiss(id string) error
	MarkAsRead(id string) error
	MarkAllAsRead()
	ClearAll()
	ClearDismissed()

	All() []*model.Notification
	ByType(notificationType string) []*model.Notification
	ByPriority(priority string) []*model.Notification
	Unread() []*model.Notification
	Active() []*model.Notification
	// Sorted 優先度の高い順、同じ優先度は新しい順
	Sorted() []*model.Notification
	UnreadCount() int

	// GenerateSampleNotifications デモ用の通知を stagger 間隔で順に追加する
	GenerateSampleNotifications(stagger time.Duration)
	// GenerateActivityNotifications スポットの評価と地域から通知を生成する
	GenerateActivityNotifications(spots []*model.TouristSpot, rng RandomSource) []*model.Notification

	// Close 予約中のタイマーを全て止める
	Close()
}

// notificationServiceImpl NotificationServiceの実装
type notificationServiceImpl struct {
	mu            sync.Mutex
	notifications []*model.Notification
	dismissTimers map[string]*time.Timer
	sampleTimers  []*time.Timer
	autoDismiss   time.Duration
	now           func() time.Time
	closed        bool
}

// NewNotificationService NotificationServiceの新しいインスタンスを作成
func NewNotificationService(autoDismiss time.Duration) NotificationService {
	return newNotificationService(autoDismiss, time.Now)
}

func newNotificationService(autoDismiss time.Duration, now func() time.Time) *notificationServiceImpl {
	return &notificationServiceImpl{
		notifications: make([]*model.Notification, 0),
		dismissTimers: make(map[string]*time.Timer),
		autoDismiss:   autoDismiss,
		now:           now,
	}
}

var sampleNotifications = []model.CreateNotificationRequest{
	{
		Type:     model.NotificationWeather,
		Priority: model.PriorityHigh,
		Title:    "Monsoon Alert",
		Message:  "Heavy rainfall expected in Mumbai region. Plan your travel accordingly.",
		Location: &model.Coordinate{72.8347, 18.9220},
	},
	{
		Type:     model.NotificationFestival,
		Priority: model.PriorityMedium,
		Title:    "Diwali Celebrations",
		Message:  "Special events and decorations at major tourist spots in Delhi.",
		Location: &model.Coordinate{77.2410, 28.6562},
	},
	{
		Type:     model.NotificationOffer,
		Priority: model.PriorityMedium,
		Title:    "Hotel Discount",
		Message:  "50% off on hotel bookings in Rajasthan for the next 7 days.",
		Location: &model.Coordinate{75.8267, 26.9239},
	},
	{
		Type:     model.NotificationTravel,
		Priority: model.PriorityLow,
		Title:    "Road Closure",
		Message:  "Temporary road closure on NH-1 near Amritsar for maintenance.",
		Location: &model.Coordinate{74.8765, 31.6200},
	},
	{
		Type:     model.NotificationInfo,
		Priority: model.PriorityLow,
		Title:    "New Attraction",
		Message:  "New heritage walk route added in Old Delhi. Check it out!",
		Location: &model.Coordinate{77.2410, 28.6562},
	},
}

func (s *notificationServiceImpl) Add(req *model.CreateNotificationRequest) *model.Notification {
	n := s.build(req)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append([]*model.Notification{n}, s.notifications...)
	metrics.NotificationsTotal.WithLabelValues(n.Type).Inc()

	if n.Priority == model.PriorityLow && s.autoDismiss > 0 && !s.closed {
		id := n.ID
		s.dismissTimers[id] = time.AfterFunc(s.autoDismiss, func() {
			s.autoDismissFired(id)
		})
	}

	copied := *n
	return &copied
}

// build リクエストに既定値を補って通知を作る
func (s *notificationServiceImpl) build(req *model.CreateNotificationRequest) *model.Notification {
	if req == nil {
		req = &model.CreateNotificationRequest{}
	}
	n := &model.Notification{
		ID:        uuid.New().String(),
		Type:      req.Type,
		Priority:  req.Priority,
		Title:     req.Title,
		Message:   req.Message,
		Timestamp: s.now(),
	}
	if n.Type == "" {
		n.Type = model.NotificationInfo
	}
	if !model.IsValidPriority(n.Priority) {
		n.Priority = model.PriorityMedium
		if req.Priority == "" {
			if typeConfig, ok := model.NotificationTypes[n.Type]; ok {
				n.Priority = typeConfig.Priority
			}
		}
	}
	if n.Title == "" {
		n.Title = "Notification"
	}
	if req.Location != nil {
		loc := *req.Location
		n.Location = &loc
	}
	return n
}

func (s *notificationServiceImpl) autoDismissFired(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dismissTimers, id)
	if n := s.find(id); n != nil {
		n.Dismissed = true
	}
}

func (s *notificationServiceImpl) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.stopTimer(id)
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", model.ErrNotificationMissing, id)
}

func (s *notificationServiceImpl) Dismiss(id string) error {
	return s.update(id, func(n *model.Notification) { n.Dismissed = true })
}

func (s *notificationServiceImpl) MarkAsRead(id string) error {
	return s.update(id, func(n *model.Notification) { n.Read = true })
}

func (s *notificationServiceImpl) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		n.Read = true
	}
}

func (s *notificationServiceImpl) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.dismissTimers {
		s.stopTimer(id)
	}
	s.notifications = make([]*model.Notification, 0)
}

func (s *notificationServiceImpl) ClearDismissed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]*model.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.Dismissed {
			s.stopTimer(n.ID)
			continue
		}
		kept = append(kept, n)
	}
	s.notifications = kept
}

func (s *notificationServiceImpl) All() []*model.Notification {
	return s.filter(func(*model.Notification) bool { return true })
}

func (s *notificationServiceImpl) ByType(notificationType string) []*model.Notification {
	return s.filter(func(n *model.Notification) bool { return n.Type == notificationType })
}

func (s *notificationServiceImpl) ByPriority(priority string) []*model.Notification {
	return s.filter(func(n *model.Notification) bool { return n.Priority == priority })
}

func (s *notificationServiceImpl) Unread() []*model.Notification {
	return s.filter(func(n *model.Notification) bool { return !n.Read })
}

func (s *notificationServiceImpl) Active() []*model.Notification {
	return s.filter(func(n *model.Notification) bool { return !n.Dismissed })
}

func (s *notificationServiceImpl) Sorted() []*model.Notification {
	result := s.All()
	sort.SliceStable(result, func(i, j int) bool {
		pi, pj := model.PriorityOrder[result[i].Priority], model.PriorityOrder[result[j].Priority]
		if pi != pj {
			return pi > pj
		}
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result
}

func (s *notificationServiceImpl) UnreadCount() int {
	return len(s.Unread())
}

func (s *notificationServiceImpl) GenerateSampleNotifications(stagger time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	for i := range sampleNotifications {
		req := sampleNotifications[i]
		s.sampleTimers = append(s.sampleTimers, time.AfterFunc(time.Duration(i)*stagger, func() {
			s.Add(&req)
		}))
	}
	log.Printf("🚀 Scheduled %d sample notifications", len(sampleNotifications))
}

func (s *notificationServiceImpl) GenerateActivityNotifications(spots []*model.TouristSpot, rng RandomSource) []*model.Notification {
	created := make([]*model.Notification, 0)
	if len(spots) == 0 || rng == nil {
		return created
	}

	popular := helper.FilterByMinRating(spots, 4.5)
	if len(popular) > 0 && rng.Float64() < 0.3 {
		spot := popular[rng.Intn(len(popular))]
		loc := spot.Coords
		created = append(created, s.Add(&model.CreateNotificationRequest{
			Type:     model.NotificationTravel,
			Priority: model.PriorityMedium,
			Title:    "Popular Destination",
			Message:  fmt.Sprintf("%s is currently trending with high visitor activity.", spot.Name),
			Location: &loc,
		}))
	}

	for _, region := range helper.UniqueRegions(spots) {
		if rng.Float64() >= 0.2 {
			continue
		}
		regionSpots := helper.FilterByRegion(spots, region)
		spot := regionSpots[rng.Intn(len(regionSpots))]
		loc := spot.Coords
		created = append(created, s.Add(&model.CreateNotificationRequest{
			Type:     model.NotificationWeather,
			Priority: model.PriorityMedium,
			Title:    "Regional Weather Update",
			Message:  fmt.Sprintf("Pleasant weather conditions in %s region. Perfect for sightseeing!", region),
			Location: &loc,
		}))
	}
	return created
}

func (s *notificationServiceImpl) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id := range s.dismissTimers {
		s.stopTimer(id)
	}
	for _, t := range s.sampleTimers {
		t.Stop()
	}
	s.sampleTimers = nil
}

// stopTimer 呼び出し側でロックを保持していること
func (s *notificationServiceImpl) stopTimer(id string) {
	if t, ok := s.dismissTimers[id]; ok {
		t.Stop()
		delete(s.dismissTimers, id)
	}
}

// find 呼び出し側でロックを保持していること
func (s *notificationServiceImpl) find(id string) *model.Notification {
	for _, n := range s.notifications {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (s *notificationServiceImpl) update(id string, apply func(*model.Notification)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.find(id)
	if n == nil {
		return fmt.Errorf("%w: %s", model.ErrNotificationMissing, id)
	}
	apply(n)
	return nil
}

// filter 条件に合う通知の複製を返す
func (s *notificationServiceImpl) filter(keep func(*model.Notification) bool) []*model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*model.Notification, 0)
	for _, n := range s.notifications {
		if keep(n) {
			copied := *n
			result = append(result, &copied)
		}
	}
	return result
}

// lockedRandom 複数のリクエストから使えるようにロックした乱数源
type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedRandom 並行利用できる乱数源を作成
func NewLockedRandom(seed int64) RandomSource {
	return &lockedRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
