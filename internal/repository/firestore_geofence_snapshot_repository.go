package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"TouristMap-App/internal/domain/model"
	"TouristMap-App/internal/domain/repository"
)

const geofenceSnapshotsCollection = "geofenceSnapshots"

// FirestoreGeofenceSnapshotRepository Firestoreを使用したジオフェンススナップショットリポジトリ
type FirestoreGeofenceSnapshotRepository struct {
	client *firestore.Client
	now    func() time.Time
}

// NewFirestoreGeofenceSnapshotRepository 新しいFirestoreGeofenceSnapshotRepositoryインスタンスを作成
func NewFirestoreGeofenceSnapshotRepository(client *firestore.Client) repository.GeofenceSnapshotRepository {
	return &FirestoreGeofenceSnapshotRepository{
		client: client,
		now:    time.Now,
	}
}

// Save スナップショットにIDを採番してFirestoreに保存する
func (r *FirestoreGeofenceSnapshotRepository) Save(ctx context.Context, snapshot *model.GeofenceSnapshot, ttlHours int) (*model.GeofenceSnapshot, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("スナップショットがnilです")
	}
	saved := *snapshot
	saved.SnapshotID = fmt.Sprintf("geofence_%s", uuid.New().String())
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = r.now().UTC()
	}

	_, err := r.client.Collection(geofenceSnapshotsCollection).Doc(saved.SnapshotID).Set(ctx, saved.ToFirestore(ttlHours))
	if err != nil {
		log.Printf("❌ Failed to save geofence snapshot %s: %v", saved.SnapshotID, err)
		return nil, fmt.Errorf("ジオフェンススナップショットの保存に失敗しました: %w", err)
	}

	log.Printf("✅ Geofence snapshot saved: %s (expires in %d hours)", saved.SnapshotID, ttlHours)
	return &saved, nil
}

// Get 指定IDのスナップショットをFirestoreから取得する
func (r *FirestoreGeofenceSnapshotRepository) Get(ctx context.Context, snapshotID string) (*model.GeofenceSnapshot, error) {
	doc, err := r.client.Collection(geofenceSnapshotsCollection).Doc(snapshotID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", model.ErrSnapshotNotFound, snapshotID)
		}
		return nil, fmt.Errorf("ジオフェンススナップショットの取得に失敗しました: %w", err)
	}

	var data model.FirestoreGeofenceSnapshot
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	if !data.ExpireAt.IsZero() && r.now().After(data.ExpireAt) {
		return nil, fmt.Errorf("%w: %s", model.ErrSnapshotNotFound, snapshotID)
	}

	log.Printf("✅ Geofence snapshot retrieved: %s", snapshotID)
	return data.ToSnapshot(snapshotID), nil
}
