package model

import "time"

// 通知種別
const (
	NotificationWeather   = "weather"
	NotificationTravel    = "travel"
	NotificationFestival  = "festival"
	NotificationOffer     = "offer"
	NotificationEmergency = "emergency"
	NotificationInfo      = "info"
)

// 通知の優先度
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PriorityOrder 並び替え用の優先度の重み
var PriorityOrder = map[string]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// NotificationTypeConfig 通知種別ごとの既定値
type NotificationTypeConfig struct {
	Priority string `json:"priority"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Title    string `json:"title"`
}

// NotificationTypes 通知種別の設定
var NotificationTypes = map[string]NotificationTypeConfig{
	NotificationWeather:   {Priority: PriorityHigh, Icon: "CloudRain", Color: "#3498db", Title: "Weather Alert"},
	NotificationTravel:    {Priority: PriorityMedium, Icon: "MapPin", Color: "#e74c3c", Title: "Travel Update"},
	NotificationFestival:  {Priority: PriorityLow, Icon: "Calendar", Color: "#f39c12", Title: "Festival Alert"},
	NotificationOffer:     {Priority: PriorityMedium, Icon: "Tag", Color: "#27ae60", Title: "Special Offer"},
	NotificationEmergency: {Priority: PriorityHigh, Icon: "AlertTriangle", Color: "#e74c3c", Title: "Emergency Alert"},
	NotificationInfo:      {Priority: PriorityLow, Icon: "Info", Color: "#95a5a6", Title: "Information"},
}

// Notification 通知フィードの1件
type Notification struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Priority  string      `json:"priority"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Location  *Coordinate `json:"location,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Read      bool        `json:"read"`
	Dismissed bool        `json:"dismissed"`
}

// CreateNotificationRequest 通知作成リクエスト
type CreateNotificationRequest struct {
	Type     string      `json:"type"`
	Priority string      `json:"priority"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Location *Coordinate `json:"location,omitempty"`
}

// IsValidPriority 優先度の値が正しいか
func IsValidPriority(p string) bool {
	_, ok := PriorityOrder[p]
	return ok
}
