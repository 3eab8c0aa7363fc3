package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const (
	LatestBriefKey = "aibrief:brief:latest"

	// The cached brief goes stale quickly; keep it for a day at most.
	LatestBriefTTL = 24 * time.Hour
)

func ConnectRedis(redisURL string) error {
	if redisURL == "" {
		fmt.Println("REDIS_URL is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// Cache is the latest-brief cache on top of a redis client.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) SetLatest(ctx context.Context, data []byte) error {
	return c.client.Set(ctx, LatestBriefKey, data, LatestBriefTTL).Err()
}

// GetLatest returns nil with no error when no brief has been cached yet.
func (c *Cache) GetLatest(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, LatestBriefKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
