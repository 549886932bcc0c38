package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// InitRedis connects the optional cache. The app runs fine without it;
// a failed ping just disables caching.
func InitRedis(addr string) {
	if addr == "" {
		log.Println("REDIS_ADDR not set, running without cache")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		Client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

func Get(ctx context.Context, key string) (string, bool) {
	if Client == nil {
		return "", false
	}
	val, err := Client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func Set(ctx context.Context, key, value string, ttl time.Duration) {
	if Client == nil {
		return
	}
	if err := Client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

func Del(ctx context.Context, keys ...string) {
	if Client == nil {
		return
	}
	if err := Client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache del: %v", err)
	}
}
