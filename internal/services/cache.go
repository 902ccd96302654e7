package services

import (
	"context"

	"github.com/parla-app/parla-backend/internal/database"
)

// BioKeyPrefix is the Redis key prefix for the bio side cache. Bios are
// stored both on the user record and under "bio_<userID>" so the
// profile page can show them without a record fetch.
const BioKeyPrefix = "bio_"

// BioCache is the side cache consumed by the profile controller.
type BioCache interface {
	Set(ctx context.Context, userID, bio string) error
	Get(ctx context.Context, userID string) (string, bool, error)
	Delete(ctx context.Context, userID string) error
}

// RedisBioCache implements BioCache on the shared Redis client.
type RedisBioCache struct{}

func NewRedisBioCache() *RedisBioCache {
	return &RedisBioCache{}
}

// Set stores a bio with no expiry; it lives as long as the account.
func (c *RedisBioCache) Set(ctx context.Context, userID, bio string) error {
	return database.RedisClient.Set(ctx, BioKeyPrefix+userID, bio, 0).Err()
}

// Get retrieves a cached bio. A missing key is a cache miss, not an error.
func (c *RedisBioCache) Get(ctx context.Context, userID string) (string, bool, error) {
	val, err := database.RedisClient.Get(ctx, BioKeyPrefix+userID).Result()
	if err != nil {
		return "", false, nil
	}
	return val, true, nil
}

func (c *RedisBioCache) Delete(ctx context.Context, userID string) error {
	return database.RedisClient.Del(ctx, BioKeyPrefix+userID).Err()
}
