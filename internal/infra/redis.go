package infra

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

// NewRedis connects to redis for presence tracking. Redis is optional:
// when the URL is empty or the server is unreachable the caller gets nil
// and presence features degrade gracefully.
func NewRedis(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("Redis not configured, presence tracking disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("WARNING: Invalid REDIS_URL, continuing without Redis: %v", err)
		return nil
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Redis connection failed, continuing without Redis: %v", err)
		return nil
	}

	log.Println("[OK] Redis connected successfully")
	return rdb
}
