package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
)

const analyticsSummaryKey = "analytics:summary"

// AnalyticsCache holds the dashboard summary for a short freshness window;
// application mutations invalidate it.
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnalyticsCache(client *redis.Client, ttl time.Duration) *AnalyticsCache {
	return &AnalyticsCache{client: client, ttl: ttl}
}

func (c *AnalyticsCache) GetSummary(ctx context.Context) (*dto.AnalyticsSummaryResponse, error) {
	v, err := c.client.Get(ctx, analyticsSummaryKey).Bytes()
	if err != nil {
		return nil, err
	}
	var summary dto.AnalyticsSummaryResponse
	if err := json.Unmarshal(v, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *AnalyticsCache) SetSummary(ctx context.Context, summary *dto.AnalyticsSummaryResponse) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, analyticsSummaryKey, b, c.ttl).Err()
}

func (c *AnalyticsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, analyticsSummaryKey).Err()
}
