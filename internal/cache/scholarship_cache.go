package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scholarhub/scholarhub-backend/internal/models"
)

const topScholarshipsKey = "scholarships:top"

// ScholarshipCache provides Redis-based caching for the top-scholarships
// list. Any scholarship mutation invalidates the key.
type ScholarshipCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScholarshipCache(client *redis.Client, ttl time.Duration) *ScholarshipCache {
	return &ScholarshipCache{client: client, ttl: ttl}
}

// GetTop returns the cached list, or redis.Nil-wrapped error on miss.
func (c *ScholarshipCache) GetTop(ctx context.Context) ([]models.Scholarship, error) {
	v, err := c.client.Get(ctx, topScholarshipsKey).Bytes()
	if err != nil {
		return nil, err
	}
	var list []models.Scholarship
	if err := json.Unmarshal(v, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *ScholarshipCache) SetTop(ctx context.Context, list []models.Scholarship) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, topScholarshipsKey, b, c.ttl).Err()
}

func (c *ScholarshipCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, topScholarshipsKey).Err()
}
