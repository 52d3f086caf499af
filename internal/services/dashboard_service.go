package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"recommendation-service/internal/models"
)

const (
	dashboardUrgentLimit  = 5
	dashboardAlertLimit   = 5
	dashboardWeatherLimit = 7
)

type DashboardService struct {
	farms FarmReader
	store RecommendationStore
	cache DashboardCache
	now   func() time.Time
}

func NewDashboardService(farms FarmReader, store RecommendationStore, cache DashboardCache) *DashboardService {
	return &DashboardService{
		farms: farms,
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// GetDashboard returns the farm's dashboard, from cache when possible.
func (s *DashboardService) GetDashboard(ctx context.Context, farmID uuid.UUID, userID string) (*models.DashboardStats, error) {
	if _, err := authorizeFarm(ctx, s.farms, farmID, userID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if stats, ok := s.cache.GetDashboard(ctx, farmID); ok {
			return stats, nil
		}
	}

	stats, err := s.compute(ctx, farmID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, stats); err != nil {
			slog.Warn("failed to cache dashboard", "farm_id", farmID, "error", err)
		}
	}
	return stats, nil
}

func (s *DashboardService) compute(ctx context.Context, farmID uuid.UUID) (*models.DashboardStats, error) {
	now := s.now()

	stats, err := s.store.GetDashboardCounts(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if stats.UrgentRecommendations, err = s.store.ListUrgentAdvisories(ctx, farmID, dashboardUrgentLimit); err != nil {
		return nil, err
	}
	if stats.RecentAlerts, err = s.store.ListRecentPestAlerts(ctx, farmID, dashboardAlertLimit); err != nil {
		return nil, err
	}
	if stats.WeatherRecommendations, err = s.store.ListUpcomingWeather(ctx, farmID, now, dashboardWeatherLimit); err != nil {
		return nil, err
	}

	stats.FarmID = farmID
	stats.ComputedAt = now
	return stats, nil
}
