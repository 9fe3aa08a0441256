package cache

import (
	"context"
	"encoding/json"
	"time"

	"app/internal/domain/model"

	"github.com/go-redis/redis/v8"
)

func itemKey(slug string) string {
	return "item:" + slug
}

// 商品詳細のcache-aside。カタログは読み取り専用なのでTTL失効だけで十分。
type RedisItemCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisItemCache(client *redis.Client, ttl time.Duration) *RedisItemCache {
	return &RedisItemCache{client: client, ttl: ttl}
}

func (c *RedisItemCache) Get(ctx context.Context, slug string) (model.Item, bool, error) {
	value, err := c.client.Get(ctx, itemKey(slug)).Result()
	if err == redis.Nil {
		return model.Item{}, false, nil
	}
	if err != nil {
		return model.Item{}, false, err
	}

	var item model.Item
	if err := json.Unmarshal([]byte(value), &item); err != nil {
		return model.Item{}, false, err
	}
	return item, true, nil
}

func (c *RedisItemCache) Set(ctx context.Context, item model.Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemKey(item.Slug), payload, c.ttl).Err()
}
