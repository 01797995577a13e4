// Package cache stores the latest per-subject analysis run in Redis so the
// summary endpoint does not hit Postgres on every read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
)

const keyPrefix = "opinion-pulse:summary:"

// SummaryCache is a TTL cache of the latest run per subject.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Config holds Redis connection settings for the cache.
type Config struct {
	URL      string
	Password string
	Database int
	TTL      time.Duration
}

// New creates a summary cache and verifies connectivity.
func New(ctx context.Context, cfg Config) (*SummaryCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &SummaryCache{rdb: rdb, ttl: cfg.TTL}, nil
}

// SetLatest stores the run as the subject's latest summary.
func (c *SummaryCache) SetLatest(ctx context.Context, subject string, run *domain.AnalysisRun) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	if err := c.rdb.Set(ctx, key(subject), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache run for %q: %w", subject, err)
	}
	return nil
}

// GetLatest returns the subject's cached run, or (nil, nil) on a miss.
func (c *SummaryCache) GetLatest(ctx context.Context, subject string) (*domain.AnalysisRun, error) {
	payload, err := c.rdb.Get(ctx, key(subject)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cached run for %q: %w", subject, err)
	}

	var run domain.AnalysisRun
	if err := json.Unmarshal(payload, &run); err != nil {
		return nil, fmt.Errorf("unmarshal cached run: %w", err)
	}
	return &run, nil
}

// Close releases the Redis connection.
func (c *SummaryCache) Close() error {
	return c.rdb.Close()
}

func key(subject string) string {
	return keyPrefix + strings.ToLower(subject)
}
