package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"recommendation-service/internal/models"
	utils "recommendation-service/shared/utils"
)

const (
	dashboardKeyPrefix = "recommendation:dashboard:"
	latestRunKeyPrefix = "recommendation:latest_run:"
)

// DashboardCache keeps dashboard stats and the latest run summary per farm in Redis.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

// GetDashboard treats every read failure as a miss.
func (c *DashboardCache) GetDashboard(ctx context.Context, farmID uuid.UUID) (*models.DashboardStats, bool) {
	data, err := c.client.Get(ctx, c.dashboardKey(farmID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("dashboard cache read failed", "farm_id", farmID, "error", err)
		}
		return nil, false
	}

	var stats models.DashboardStats
	if err := utils.DeserializeModel(data, &stats); err != nil {
		slog.Warn("dashboard cache entry unreadable", "farm_id", farmID, "error", err)
		return nil, false
	}
	return &stats, true
}

func (c *DashboardCache) SetDashboard(ctx context.Context, stats *models.DashboardStats) error {
	data, err := utils.SerializeModel(stats)
	if err != nil {
		return fmt.Errorf("failed to serialize dashboard: %w", err)
	}
	if err := c.client.Set(ctx, c.dashboardKey(stats.FarmID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache dashboard: %w", err)
	}
	return nil
}

func (c *DashboardCache) SetLatestRun(ctx context.Context, result *models.RunResult) error {
	summary := *result
	summary.Recommendations = nil

	data, err := utils.SerializeModel(summary)
	if err != nil {
		return fmt.Errorf("failed to serialize run summary: %w", err)
	}
	if err := c.client.Set(ctx, c.latestRunKey(result.FarmID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache run summary: %w", err)
	}
	return nil
}

// GetLatestRun returns the counters of the farm's last run, without advisories.
func (c *DashboardCache) GetLatestRun(ctx context.Context, farmID uuid.UUID) (*models.RunResult, error) {
	data, err := c.client.Get(ctx, c.latestRunKey(farmID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.NewNotFound("latest run", farmID.String())
		}
		return nil, fmt.Errorf("failed to read run summary: %w", err)
	}

	var result models.RunResult
	if err := utils.DeserializeModel(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *DashboardCache) Invalidate(ctx context.Context, farmID uuid.UUID) error {
	if err := c.client.Del(ctx, c.dashboardKey(farmID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard: %w", err)
	}
	return nil
}

func (c *DashboardCache) dashboardKey(farmID uuid.UUID) string {
	return dashboardKeyPrefix + farmID.String()
}

func (c *DashboardCache) latestRunKey(farmID uuid.UUID) string {
	return latestRunKeyPrefix + farmID.String()
}
