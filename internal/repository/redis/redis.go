package redis

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
)

// 默认连接池参数，可用 REDIS_POOL_SIZE / REDIS_MIN_IDLE 覆盖
const (
	defaultPoolSize = 10
	defaultMinIdle  = 2
)

// Init 建立 Redis 连接并 Ping 一次，点赞计数缓存和登录态都走这个客户端
func Init(addr, password string, db int) error {
	Client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     envInt("REDIS_POOL_SIZE", defaultPoolSize),
		MinIdleConns: envInt("REDIS_MIN_IDLE", defaultMinIdle),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return Client.Ping(ctx).Err()
}

// Close 进程退出时调用
func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}
