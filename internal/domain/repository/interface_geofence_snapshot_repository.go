package repository

import (
	"context"

	"TouristMap-App/internal/domain/model"
)

// GeofenceSnapshotRepository ジオフェンス計算結果のスナップショット保存
type GeofenceSnapshotRepository interface {
	Save(ctx context.Context, snapshot *model.GeofenceSnapshot, ttlHours int) (*model.GeofenceSnapshot, error)
	Get(ctx context.Context, snapshotID string) (*model.GeofenceSnapshot, error)
}
