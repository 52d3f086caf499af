package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommendation-service/internal/models"
)

func TestGetDashboard_ComputesAndCaches(t *testing.T) {
	f := newAdvisoryFixture(t)
	ctx := context.Background()
	dashboard := NewDashboardService(f.farms, f.store, f.cache)
	dashboard.now = fixedClock

	crop := f.firstOf(t, models.RecommendationCropSelection)
	_, err := f.service.Implement(ctx, crop.ID, "owner-1")
	require.NoError(t, err)
	_, err = f.service.SubmitFeedback(ctx, crop.ID, "owner-1", validFeedback(4, ""))
	require.NoError(t, err)

	stats, err := dashboard.GetDashboard(ctx, f.farm.ID, "owner-1")
	require.NoError(t, err)

	assert.Equal(t, len(f.store.advisories), stats.TotalActive)
	assert.Equal(t, 1, stats.Implemented)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.001)
	assert.Len(t, stats.WeatherRecommendations, dashboardWeatherLimit)
	assert.Empty(t, stats.UrgentRecommendations)
	assert.Equal(t, testNow, stats.ComputedAt)

	cached, ok := f.cache.GetDashboard(ctx, f.farm.ID)
	require.True(t, ok)
	assert.Equal(t, stats.TotalActive, cached.TotalActive)
}

func TestGetDashboard_ServesCachedStats(t *testing.T) {
	f := newAdvisoryFixture(t)
	ctx := context.Background()
	dashboard := NewDashboardService(f.farms, f.store, f.cache)

	require.NoError(t, f.cache.SetDashboard(ctx, &models.DashboardStats{FarmID: f.farm.ID, TotalActive: 99}))

	stats, err := dashboard.GetDashboard(ctx, f.farm.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 99, stats.TotalActive)
}

func TestGetDashboard_ActionInvalidatesCache(t *testing.T) {
	f := newAdvisoryFixture(t)
	ctx := context.Background()
	dashboard := NewDashboardService(f.farms, f.store, f.cache)

	before, err := dashboard.GetDashboard(ctx, f.farm.ID, "owner-1")
	require.NoError(t, err)

	_, err = f.service.Dismiss(ctx, f.firstOf(t, models.RecommendationWeatherBased).ID, "owner-1")
	require.NoError(t, err)

	after, err := dashboard.GetDashboard(ctx, f.farm.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, before.TotalActive-1, after.TotalActive)
}

func TestGetDashboard_WithoutCache(t *testing.T) {
	f := newAdvisoryFixture(t)
	dashboard := NewDashboardService(f.farms, f.store, nil)

	stats, err := dashboard.GetDashboard(context.Background(), f.farm.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, f.farm.ID, stats.FarmID)

	_, err = dashboard.GetDashboard(context.Background(), f.farm.ID, "intruder")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
