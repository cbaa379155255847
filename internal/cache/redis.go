package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient 定義了 NewRedisClient 內部使用的必要方法，便於測試時替換。
type redisClient interface {
	Cache
	Ping(ctx context.Context) *redis.StatusCmd
}

// redisNewClient 用來建立 redis client，測試可覆寫此變數。
var redisNewClient = func(opt *redis.Options) redisClient {
	return redis.NewClient(opt)
}

// NewRedisClient 建立 Redis 客戶端並在 5 秒內完成 Ping
// addr: Redis 位址；password: 密碼，可空；db: 資料庫編號
func NewRedisClient(addr string, password string, db int) (Cache, error) {
	client := redisNewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("NewRedisClient: %w", err)
	}
	return client, nil
}
