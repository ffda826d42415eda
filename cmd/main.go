package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TouristMap-App/internal/application"
	"TouristMap-App/internal/config"
	"TouristMap-App/internal/domain/repository"
	"TouristMap-App/internal/domain/service"
	"TouristMap-App/internal/handler"
	"TouristMap-App/internal/infrastructure/cache"
	"TouristMap-App/internal/infrastructure/database"
	"TouristMap-App/internal/infrastructure/firestore"
	"TouristMap-App/internal/infrastructure/geometry"
	repoImpl "TouristMap-App/internal/repository"
	"TouristMap-App/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

// run 終了時に closers を必ず実行し、起動・停止の失敗はエラーで返す
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	ctx := context.Background()
	closers := make([]func() error, 0)
	defer func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Printf("⚠️ Close failed: %v", err)
			}
		}
	}()

	spotsRepo, err := setupSpotsRepository(cfg, &closers)
	if err != nil {
		return err
	}
	cellsRepo := setupHexCellsRepository(cfg)
	gridCache := setupHexGridCache(ctx, cfg, &closers)
	snapshotRepo := setupSnapshotRepository(ctx, cfg, &closers)

	provider := geometry.NewOrbProvider(cfg.Geo)
	seed := time.Now().UnixNano()

	hexagonUseCase := usecase.NewHexagonUseCase(
		service.NewHexGridService(provider, cfg.Geo),
		spotsRepo, cellsRepo, gridCache, cfg.Geo, rand.New(rand.NewSource(seed)),
	)
	geofenceUseCase := usecase.NewGeofenceUseCase(
		hexagonUseCase, service.NewGeofenceService(provider, cfg.Geo), snapshotRepo, cfg.Geo, cfg.SnapshotTTLHours,
	)
	coverageUseCase := usecase.NewCoverageUseCase(service.NewCoverageAreaService(provider, cfg.Geo), spotsRepo, cfg.Geo)

	notificationService := application.NewNotificationService(cfg.Geo.NotificationAutoDismiss)
	defer notificationService.Close()

	router := handler.SetupRouter(&handler.Handlers{
		Spots:         handler.NewSpotsHandler(spotsRepo),
		Hexagons:      handler.NewHexagonHandler(hexagonUseCase),
		Geofences:     handler.NewGeofenceHandler(geofenceUseCase),
		Coverage:      handler.NewCoverageHandler(coverageUseCase),
		Notifications: handler.NewNotificationHandler(notificationService, spotsRepo, application.NewLockedRandom(seed)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return serve(ctx, srv, quit, 10*time.Second)
}

// serve 停止シグナルまたはリッスン失敗まで待ち、停止時は処理中のリクエストを待って閉じる
func serve(ctx context.Context, srv *http.Server, quit <-chan os.Signal, shutdownTimeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 TouristMap-App server starting on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("サーバー起動失敗: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Println("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("サーバー停止失敗: %w", err)
	}
	return nil
}

func setupSpotsRepository(cfg *config.Config, closers *[]func() error) (repository.TouristSpotsRepository, error) {
	if cfg.SpotSource != config.SpotSourcePostgres {
		log.Println("✅ Using built-in tourist spot table")
		return repoImpl.NewStaticTouristSpotsRepository(), nil
	}

	client, err := database.NewPostgreSQLClientWithRetry(5, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PostgreSQLクライアント初期化失敗: %w", err)
	}
	*closers = append(*closers, client.Close)
	log.Println("✅ Using PostgreSQL tourist_spots table")
	return repoImpl.NewPostgresTouristSpotsRepository(client), nil
}

func setupHexCellsRepository(cfg *config.Config) repository.HexCellsRepository {
	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		log.Println("⚠️ SUPABASE_URL / SUPABASE_ANON_KEY not set: hex cell persistence disabled")
		return nil
	}
	client, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	if err != nil {
		log.Printf("⚠️ Supabaseクライアント初期化失敗、セル保存を無効化: %v", err)
		return nil
	}
	if err := client.HealthCheck(); err != nil {
		log.Printf("⚠️ Supabaseヘルスチェック失敗、セル保存を無効化: %v", err)
		return nil
	}
	return repoImpl.NewSupabaseHexCellsRepository(client, cfg.Geo.Thresholds)
}

func setupHexGridCache(ctx context.Context, cfg *config.Config, closers *[]func() error) repository.HexGridCache {
	if cfg.RedisAddr == "" {
		log.Println("⚠️ REDIS_ADDR not set: hex grid cache disabled")
		return nil
	}
	rc, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("⚠️ Redis接続失敗、グリッドキャッシュを無効化: %v", err)
		return nil
	}
	*closers = append(*closers, rc.Close)
	return repoImpl.NewRedisHexGridCache(rc, cfg.HexGridTTL, cfg.Geo.Thresholds)
}

func setupSnapshotRepository(ctx context.Context, cfg *config.Config, closers *[]func() error) repository.GeofenceSnapshotRepository {
	if cfg.FirestoreProjectID == "" {
		log.Println("⚠️ FIRESTORE_PROJECT_ID not set: geofence snapshots disabled")
		return nil
	}
	client, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID)
	if err != nil {
		log.Printf("⚠️ Firestoreクライアント初期化失敗、スナップショットを無効化: %v", err)
		return nil
	}
	*closers = append(*closers, client.Close)
	return repoImpl.NewFirestoreGeofenceSnapshotRepository(client.GetClient())
}
