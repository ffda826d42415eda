package model

import "errors"

// ハンドラでステータスコードに変換するための共通エラー
var (
	ErrUnknownRegion       = errors.New("unknown region")
	ErrHexagonNotFound     = errors.New("hexagon not found")
	ErrSpotNotFound        = errors.New("tourist spot not found")
	ErrSnapshotNotFound    = errors.New("geofence snapshot not found")
	ErrNotificationMissing = errors.New("notification not found")
)
