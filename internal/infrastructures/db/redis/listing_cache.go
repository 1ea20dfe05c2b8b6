package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/ports"
)

type ListingCache struct {
	redis *redis.Client
}

func NewListingCache(redisClient *redis.Client) *ListingCache {
	return &ListingCache{redis: redisClient}
}

func (c *ListingCache) Get(ctx context.Context, key ports.ListingKey) ([]models.VehicleCatalogEntry, error) {
	data, err := c.redis.Get(ctx, listingKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, derr.ErrListingNotCached
		}
		return nil, fmt.Errorf("redis get listing: %w", err)
	}

	entries := []models.VehicleCatalogEntry{}
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, fmt.Errorf("unmarshal cached listing: %w", err)
	}

	return entries, nil
}

func (c *ListingCache) Set(ctx context.Context, key ports.ListingKey, entries []models.VehicleCatalogEntry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if entries == nil {
		entries = []models.VehicleCatalogEntry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal listing for cache: %w", err)
	}

	if err := c.redis.Set(ctx, listingKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set listing: %w", err)
	}

	return nil
}

func listingKey(key ports.ListingKey) string {
	return "listing:" + key.String()
}
