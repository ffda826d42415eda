package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"TouristMap-App/internal/domain/model"
)

// スポットデータの読み込み元
const (
	SpotSourceStatic   = "static"
	SpotSourcePostgres = "postgres"
)

// Config 環境変数から読み込んだアプリケーション設定
type Config struct {
	Port       string
	SpotSource string

	SupabaseURL     string
	SupabaseAnonKey string

	FirestoreProjectID string
	SnapshotTTLHours   int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	HexGridTTL    time.Duration

	Geo *model.GeoConfig
}

// Load .env と環境変数から設定を読み込む
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv 任意の環境変数取得関数から設定を組み立てる
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}

	geo := model.DefaultGeoConfig()
	cfg := &Config{
		Port:               r.str("PORT", "8080"),
		SpotSource:         r.str("SPOT_SOURCE", SpotSourceStatic),
		SupabaseURL:        getenv("SUPABASE_URL"),
		SupabaseAnonKey:    getenv("SUPABASE_ANON_KEY"),
		FirestoreProjectID: getenv("FIRESTORE_PROJECT_ID"),
		SnapshotTTLHours:   r.int("SNAPSHOT_TTL_HOURS", 24),
		RedisAddr:          getenv("REDIS_ADDR"),
		RedisPassword:      getenv("REDIS_PASSWORD"),
		RedisDB:            r.int("REDIS_DB", 0),
		HexGridTTL:         r.duration("HEXGRID_CACHE_TTL", time.Hour),
		Geo:                geo,
	}

	geo.NotificationAutoDismiss = r.duration("NOTIFICATION_AUTO_DISMISS", geo.NotificationAutoDismiss)
	geo.H3Resolution = r.int("H3_RESOLUTION", geo.H3Resolution)

	indiaKm := r.float("HEXAGON_SIZE_KM", 0)
	if indiaKm > 0 {
		for i := range geo.IndiaRegions {
			geo.IndiaRegions[i].CellSideKm = indiaKm
		}
	}
	stateKm := r.float("GEOFENCE_HEXAGON_SIZE_KM", 0)
	if stateKm > 0 {
		for i := range geo.StateRegions {
			geo.StateRegions[i].CellSideKm = stateKm
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	if cfg.SpotSource != SpotSourceStatic && cfg.SpotSource != SpotSourcePostgres {
		return nil, fmt.Errorf("SPOT_SOURCE は %s か %s を指定してください: %s", SpotSourceStatic, SpotSourcePostgres, cfg.SpotSource)
	}
	if geo.H3Resolution < 0 || geo.H3Resolution > 15 {
		return nil, fmt.Errorf("H3_RESOLUTION は0から15の範囲で指定してください: %d", geo.H3Resolution)
	}
	return cfg, nil
}

// reader 最初のパースエラーを保持する環境変数リーダー
type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) str(key, def string) string {
	if v := r.getenv(key); v != "" {
		return v
	}
	return def
}

func (r *reader) int(key string, def int) int {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *reader) float(key string, def float64) float64 {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return f
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *reader) fail(key, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("環境変数 %s の値が不正です (%q): %w", key, value, err)
	}
}
