package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
)

const plantCacheTTL = 5 * time.Minute

// PlantCache is a cache-aside store for single-plant lookups backed by Redis.
// Key format: plant:<id>
type PlantCache struct {
	client *redis.Client
}

// NewPlantCache creates a PlantCache wrapping the given Redis client.
func NewPlantCache(client *redis.Client) *PlantCache {
	return &PlantCache{client: client}
}

// Get returns the cached plant, or (nil, nil) on a miss.
func (c *PlantCache) Get(ctx context.Context, id string) (*domain.Plant, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("plant cache get: %w", err)
	}

	var plant domain.Plant
	if err := json.Unmarshal(raw, &plant); err != nil {
		// Treat a corrupt entry as a miss; it will be rewritten.
		return nil, nil
	}
	return &plant, nil
}

// Set stores the plant (expires after plantCacheTTL).
func (c *PlantCache) Set(ctx context.Context, plant *domain.Plant) error {
	raw, err := json.Marshal(plant)
	if err != nil {
		return fmt.Errorf("plant cache set: %w", err)
	}
	return c.client.Set(ctx, c.key(plant.ID), raw, plantCacheTTL).Err()
}

// Invalidate drops the cache entry after a write to the underlying record.
func (c *PlantCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *PlantCache) key(id string) string {
	return fmt.Sprintf("plant:%s", id)
}
