package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient go-redis クライアントのラッパー
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient 接続を確認してRedisクライアントを作成
func NewRedisClient(ctx context.Context, addr, password string, db int) (*RedisClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR環境変数が設定されていません")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redisへの接続に失敗: %w", err)
	}

	log.Printf("✅ Redis connected: %s (db=%d)", addr, db)
	return &RedisClient{client: client}, nil
}

// NewRedisClientFromClient 既存の go-redis クライアントを包む
func NewRedisClientFromClient(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// GetClient go-redis クライアントを取得
func (rc *RedisClient) GetClient() *redis.Client {
	return rc.client
}

// Close 接続を閉じる
func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
