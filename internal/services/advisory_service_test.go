package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommendation-service/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type advisoryFixture struct {
	farms   *fakeFarmReader
	store   *memoryStore
	cache   *memoryCache
	service *AdvisoryService
	farm    models.Farm
}

func newAdvisoryFixture(t *testing.T) *advisoryFixture {
	t.Helper()
	farms := newFakeFarmReader()
	farm := farms.addFarm("owner-1", "North")
	farms.crops = testCrops("Rice", "Maize", "Wheat")
	store := newMemoryStore()
	cache := newMemoryCache()

	_, err := newTestRecommendationService(farms, store, &recordingPublisher{}, nil, constantSource{f: 0.5}).
		Run(context.Background(), farm.ID, "owner-1")
	require.NoError(t, err)

	service := NewAdvisoryService(farms, store, cache)
	service.now = fixedClock
	return &advisoryFixture{farms: farms, store: store, cache: cache, service: service, farm: farm}
}

func (f *advisoryFixture) firstOf(t *testing.T, rt models.RecommendationType) models.Advisory {
	t.Helper()
	for _, id := range f.store.order {
		if a := f.store.advisories[id]; a.RecommendationType == rt {
			return *a
		}
	}
	t.Fatalf("no %s advisory stored", rt)
	return models.Advisory{}
}

func validFeedback(rating int, comments string) models.SubmitFeedbackRequest {
	return models.SubmitFeedbackRequest{
		UsefulnessRating:         rating,
		AccuracyRating:           4,
		ImplementationDifficulty: models.DifficultyModerate,
		Comments:                 comments,
	}
}

// ============================================================================
// STATE MACHINE
// ============================================================================

func TestDismissReactivate_RoundTrip(t *testing.T) {
	f := newAdvisoryFixture(t)
	advisory := f.firstOf(t, models.RecommendationCropSelection)
	ctx := context.Background()

	dismissed, err := f.service.Dismiss(ctx, advisory.ID, "owner-1")
	require.NoError(t, err)
	assert.False(t, dismissed.IsActive)
	assert.Equal(t, models.AdvisoryStatusDismissed, dismissed.Status())

	reactivated, err := f.service.Reactivate(ctx, advisory.ID, "owner-1")
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)
	assert.False(t, reactivated.IsImplemented)

	stored, err := f.store.GetAdvisory(ctx, advisory.ID)
	require.NoError(t, err)
	assert.Equal(t, advisory.IsActive, stored.IsActive)
	assert.Equal(t, advisory.IsImplemented, stored.IsImplemented)
	assert.Equal(t, advisory.Title, stored.Title)
	assert.Equal(t, 2, f.cache.invalidated)
}

func TestImplement_KeepsAdvisoryActive(t *testing.T) {
	f := newAdvisoryFixture(t)
	advisory := f.firstOf(t, models.RecommendationWeatherBased)

	implemented, err := f.service.Implement(context.Background(), advisory.ID, "owner-1")
	require.NoError(t, err)

	assert.True(t, implemented.IsImplemented)
	assert.True(t, implemented.IsActive)
	require.NotNil(t, implemented.ImplementedAt)
	assert.Equal(t, testNow, *implemented.ImplementedAt)
	assert.Equal(t, models.AdvisoryStatusImplemented, implemented.Status())
}

func TestApplyAction(t *testing.T) {
	f := newAdvisoryFixture(t)
	advisory := f.firstOf(t, models.RecommendationCropSelection)
	ctx := context.Background()

	tests := []struct {
		action  models.AdvisoryAction
		message string
		active  bool
	}{
		{models.ActionDismiss, "Recommendation dismissed", false},
		{models.ActionReactivate, "Recommendation reactivated", true},
		{models.ActionImplement, "Recommendation implemented", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			result, err := f.service.ApplyAction(ctx, advisory.ID, "owner-1", tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.message, result.Message)
			assert.Equal(t, tt.active, result.Advisory.IsActive)
		})
	}

	_, err := f.service.ApplyAction(ctx, advisory.ID, "owner-1", "archive")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestActions_ForeignOrMissingAdvisory(t *testing.T) {
	f := newAdvisoryFixture(t)
	advisory := f.firstOf(t, models.RecommendationCropSelection)
	ctx := context.Background()

	_, err := f.service.Dismiss(ctx, advisory.ID, "someone-else")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.service.Implement(ctx, uuid.New(), "owner-1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	stored, _ := f.store.GetAdvisory(ctx, advisory.ID)
	assert.True(t, stored.IsActive)
}

// ============================================================================
// FEEDBACK
// ============================================================================

func TestSubmitFeedback_IsIdempotentPerAdvisoryAndUser(t *testing.T) {
	f := newAdvisoryFixture(t)
	advisory := f.firstOf(t, models.RecommendationCropSelection)
	ctx := context.Background()

	first, err := f.service.SubmitFeedback(ctx, advisory.ID, "owner-1", validFeedback(3, "ok"))
	require.NoError(t, err)
	second, err := f.service.SubmitFeedback(ctx, advisory.ID, "owner-1", validFeedback(5, "great"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.store.feedback, 1)

	stored, err := f.store.GetFeedback(ctx, advisory.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.UsefulnessRating)

	updated, _ := f.store.GetAdvisory(ctx, advisory.ID)
	require.NotNil(t, updated.FeedbackRating)
	assert.Equal(t, 5, *updated.FeedbackRating)
	assert.Equal(t, "great", updated.FeedbackNotes)
}

func TestSubmitFeedback_Validation(t *testing.T) {
	f := newAdvisoryFixture(t)
	advisory := f.firstOf(t, models.RecommendationCropSelection)

	tests := []struct {
		name string
		req  models.SubmitFeedbackRequest
	}{
		{"rating above five", validFeedback(6, "")},
		{"rating missing", validFeedback(0, "")},
		{"bad difficulty", models.SubmitFeedbackRequest{UsefulnessRating: 3, AccuracyRating: 3, ImplementationDifficulty: "trivial"}},
		{"accuracy out of range", models.SubmitFeedbackRequest{UsefulnessRating: 3, AccuracyRating: 9, ImplementationDifficulty: models.DifficultyEasy}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.SubmitFeedback(context.Background(), advisory.ID, "owner-1", tt.req)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
	assert.Empty(t, f.store.feedback)
}

// ============================================================================
// QUERIES
// ============================================================================

func TestGetAdvisoryView_ResolvesDetailAndFeedback(t *testing.T) {
	f := newAdvisoryFixture(t)
	advisory := f.firstOf(t, models.RecommendationWeatherBased)
	ctx := context.Background()

	view, err := f.service.GetAdvisoryView(ctx, advisory.ID, "owner-1")
	require.NoError(t, err)
	require.NotNil(t, view.Detail)
	assert.Equal(t, models.RecommendationWeatherBased, view.Detail.Type)
	assert.NotNil(t, view.Detail.Weather)
	assert.Nil(t, view.Feedback)
	assert.False(t, view.IsExpired)

	_, err = f.service.SubmitFeedback(ctx, advisory.ID, "owner-1", validFeedback(4, ""))
	require.NoError(t, err)

	f.service.now = func() time.Time { return testNow.AddDate(0, 1, 0) }
	view, err = f.service.GetAdvisoryView(ctx, advisory.ID, "owner-1")
	require.NoError(t, err)
	require.NotNil(t, view.Feedback)
	assert.Equal(t, 4, view.Feedback.UsefulnessRating)
	assert.True(t, view.IsExpired)
}

func TestListAdvisories_DefaultsAndStatusFilters(t *testing.T) {
	f := newAdvisoryFixture(t)
	ctx := context.Background()

	all, page, err := f.service.ListAdvisories(ctx, models.AdvisoryFilter{UserID: "owner-1", Status: models.AdvisoryStatusAll})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, page.Limit)
	assert.Equal(t, 1, page.Page)
	total := page.Total
	assert.Equal(t, min(total, DefaultPageSize), len(all))

	target := f.firstOf(t, models.RecommendationCropSelection)
	_, err = f.service.Dismiss(ctx, target.ID, "owner-1")
	require.NoError(t, err)

	active, page, err := f.service.ListAdvisories(ctx, models.AdvisoryFilter{UserID: "owner-1", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.Limit)
	assert.Equal(t, total-1, page.Total)
	for _, a := range active {
		assert.NotEqual(t, target.ID, a.ID)
	}

	dismissed, page, err := f.service.ListAdvisories(ctx, models.AdvisoryFilter{UserID: "owner-1", Status: models.AdvisoryStatusDismissed})
	require.NoError(t, err)
	require.Len(t, dismissed, 1)
	assert.Equal(t, target.ID, dismissed[0].ID)
	assert.Equal(t, 1, page.TotalPages)

	_, _, err = f.service.ListAdvisories(ctx, models.AdvisoryFilter{UserID: "owner-1", Status: "archived"})
	assert.ErrorIs(t, err, models.ErrValidation)
	_, _, err = f.service.ListAdvisories(ctx, models.AdvisoryFilter{UserID: "owner-1", Type: "irrigation"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListResourceOptimizations_TotalsSavings(t *testing.T) {
	f := newAdvisoryFixture(t)

	list, err := f.service.ListResourceOptimizations(context.Background(), models.ResourceOptimizationFilter{OwnerID: "owner-1"})
	require.NoError(t, err)
	require.NotEmpty(t, list.Optimizations)

	var sum float64
	for _, o := range list.Optimizations {
		sum += o.PotentialSavings
	}
	assert.InDelta(t, sum, list.TotalSavings, 0.001)

	_, err = f.service.ListResourceOptimizations(context.Background(), models.ResourceOptimizationFilter{ResourceType: "sunlight"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListPestAlerts_Stats(t *testing.T) {
	store := newMemoryStore()
	farmID := uuid.New()
	save := func(severity models.Severity, active bool, alertDate time.Time) {
		alert := &models.PestDiseaseAlert{FarmID: farmID, SeverityLevel: severity, IsActive: active, AlertDate: alertDate}
		require.NoError(t, store.SaveAdvisory(context.Background(),
			&models.Advisory{RecommendationType: models.RecommendationPestDisease, UserID: "owner-1", FarmID: farmID},
			&models.AdvisoryDetail{Type: models.RecommendationPestDisease, PestDisease: alert}))
	}
	save(models.SeverityCritical, true, testNow.AddDate(0, 0, -1))
	save(models.SeverityHigh, true, testNow.AddDate(0, 0, -10))
	save(models.SeverityCritical, false, testNow.AddDate(0, 0, -2))

	service := NewAdvisoryService(newFakeFarmReader(), store, nil)
	service.now = fixedClock

	list, err := service.ListPestAlerts(context.Background(), models.PestAlertFilter{OwnerID: "owner-1"})
	require.NoError(t, err)
	assert.Len(t, list.Alerts, 3)
	assert.Equal(t, models.PestAlertStats{TotalActive: 2, CriticalAlerts: 1, RecentAlerts: 2}, list.Stats)

	_, err = service.ListPestAlerts(context.Background(), models.PestAlertFilter{Severity: "extreme"})
	assert.ErrorIs(t, err, models.ErrValidation)
}
