package services

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"recommendation-service/internal/ai/engine"
	"recommendation-service/internal/models"
)

// ============================================================================
// FARM READER
// ============================================================================

type fakeFarmReader struct {
	farms   map[uuid.UUID]models.Farm
	fields  map[uuid.UUID][]models.Field
	crops   []models.Crop
	cycles  []models.CropCycle
	history map[uuid.UUID][]models.CropCycle
}

func newFakeFarmReader() *fakeFarmReader {
	return &fakeFarmReader{
		farms:   map[uuid.UUID]models.Farm{},
		fields:  map[uuid.UUID][]models.Field{},
		history: map[uuid.UUID][]models.CropCycle{},
	}
}

func (f *fakeFarmReader) addFarm(owner string, fieldNames ...string) models.Farm {
	farm := models.Farm{ID: uuid.New(), OwnerID: owner, Name: owner + " farm", IsActive: true}
	f.farms[farm.ID] = farm
	for _, name := range fieldNames {
		f.fields[farm.ID] = append(f.fields[farm.ID], models.Field{ID: uuid.New(), FarmID: farm.ID, Name: name, IsActive: true})
	}
	return farm
}

func (f *fakeFarmReader) GetFarm(ctx context.Context, farmID uuid.UUID) (*models.Farm, error) {
	farm, ok := f.farms[farmID]
	if !ok {
		return nil, models.NewNotFound("farm", farmID.String())
	}
	return &farm, nil
}

func (f *fakeFarmReader) ListActiveFarms(ctx context.Context) ([]models.Farm, error) {
	var out []models.Farm
	for _, farm := range f.farms {
		if farm.IsActive {
			out = append(out, farm)
		}
	}
	return out, nil
}

func (f *fakeFarmReader) ListFields(ctx context.Context, farmID uuid.UUID) ([]models.Field, error) {
	return f.fields[farmID], nil
}

func (f *fakeFarmReader) ListCrops(ctx context.Context) ([]models.Crop, error) {
	return f.crops, nil
}

func (f *fakeFarmReader) ListFieldHistory(ctx context.Context, fieldID uuid.UUID, asOf time.Time, limit int) ([]models.CropCycle, error) {
	history := f.history[fieldID]
	return history[:min(limit, len(history))], nil
}

func (f *fakeFarmReader) ListActiveCycles(ctx context.Context, farmID uuid.UUID, asOf time.Time) ([]models.CropCycle, error) {
	var out []models.CropCycle
	for _, c := range f.cycles {
		if engine.IsActiveCycle(c, asOf) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeFarmReader) ListUpcomingHarvests(ctx context.Context, farmID uuid.UUID, asOf time.Time, days int) ([]models.CropCycle, error) {
	var out []models.CropCycle
	for _, c := range f.cycles {
		if engine.HarvestWithin(c, asOf, days) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ============================================================================
// RECOMMENDATION STORE
// ============================================================================

type feedbackKey struct {
	advisoryID uuid.UUID
	userID     string
}

type memoryStore struct {
	mu         sync.Mutex
	advisories map[uuid.UUID]*models.Advisory
	order      []uuid.UUID
	details    map[uuid.UUID]models.AdvisoryDetail
	feedback   map[feedbackKey]*models.RecommendationFeedback

	// failOn makes SaveAdvisory fail for that recommendation type.
	failOn models.RecommendationType
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		advisories: map[uuid.UUID]*models.Advisory{},
		details:    map[uuid.UUID]models.AdvisoryDetail{},
		feedback:   map[feedbackKey]*models.RecommendationFeedback{},
	}
}

func (s *memoryStore) SaveAdvisory(ctx context.Context, advisory *models.Advisory, detail *models.AdvisoryDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if advisory.RecommendationType == s.failOn {
		return errors.New("insert failed")
	}

	detailID := uuid.New()
	s.details[detailID] = *detail
	advisory.ID = uuid.New()
	advisory.DetailID = detailID

	stored := *advisory
	s.advisories[advisory.ID] = &stored
	s.order = append(s.order, advisory.ID)
	return nil
}

func (s *memoryStore) GetAdvisory(ctx context.Context, id uuid.UUID) (*models.Advisory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.advisories[id]
	if !ok {
		return nil, models.NewNotFound("advisory", id.String())
	}
	copied := *a
	return &copied, nil
}

func (s *memoryStore) GetAdvisoryDetail(ctx context.Context, advisory *models.Advisory) (*models.AdvisoryDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.details[advisory.DetailID]
	if !ok {
		return nil, models.NewNotFound("detail", advisory.DetailID.String())
	}
	return &d, nil
}

func (s *memoryStore) UpdateAdvisoryState(ctx context.Context, advisory *models.Advisory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.advisories[advisory.ID]
	if !ok {
		return models.NewNotFound("advisory", advisory.ID.String())
	}
	a.IsActive = advisory.IsActive
	a.IsImplemented = advisory.IsImplemented
	a.ImplementedAt = advisory.ImplementedAt
	return nil
}

func (s *memoryStore) ListAdvisories(ctx context.Context, filter models.AdvisoryFilter) ([]models.Advisory, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.Advisory
	for _, id := range s.order {
		a := s.advisories[id]
		if a.UserID != filter.UserID {
			continue
		}
		if filter.FarmID != nil && a.FarmID != *filter.FarmID {
			continue
		}
		if filter.Type != "" && a.RecommendationType != filter.Type {
			continue
		}
		if filter.Priority != "" && a.Priority != filter.Priority {
			continue
		}
		switch filter.Status {
		case models.AdvisoryStatusActive:
			if !a.IsActive || a.IsImplemented {
				continue
			}
		case models.AdvisoryStatusImplemented:
			if !a.IsImplemented {
				continue
			}
		case models.AdvisoryStatusDismissed:
			if a.IsActive {
				continue
			}
		}
		matched = append(matched, *a)
	}

	start := min(filter.Offset(), len(matched))
	end := min(start+filter.Limit, len(matched))
	return matched[start:end], len(matched), nil
}

func (s *memoryStore) UpsertFeedback(ctx context.Context, feedback *models.RecommendationFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.advisories[feedback.AdvisoryID]
	if !ok {
		return models.NewNotFound("advisory", feedback.AdvisoryID.String())
	}

	key := feedbackKey{feedback.AdvisoryID, feedback.UserID}
	if existing, ok := s.feedback[key]; ok {
		feedback.ID = existing.ID
		feedback.CreatedAt = existing.CreatedAt
	} else {
		feedback.ID = uuid.New()
		feedback.CreatedAt = time.Now()
	}
	feedback.UpdatedAt = time.Now()
	stored := *feedback
	s.feedback[key] = &stored

	rating := feedback.UsefulnessRating
	a.FeedbackRating = &rating
	a.FeedbackNotes = feedback.Comments
	return nil
}

func (s *memoryStore) GetFeedback(ctx context.Context, advisoryID uuid.UUID, userID string) (*models.RecommendationFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.feedback[feedbackKey{advisoryID, userID}]
	if !ok {
		return nil, nil
	}
	copied := *f
	return &copied, nil
}

func (s *memoryStore) detailsOf(t models.RecommendationType) []models.AdvisoryDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AdvisoryDetail
	for _, id := range s.order {
		if a := s.advisories[id]; a.RecommendationType == t {
			out = append(out, s.details[a.DetailID])
		}
	}
	return out
}

func (s *memoryStore) ListPestAlerts(ctx context.Context, filter models.PestAlertFilter) ([]models.PestDiseaseAlert, error) {
	var out []models.PestDiseaseAlert
	for _, d := range s.detailsOf(models.RecommendationPestDisease) {
		if filter.FarmID != nil && d.PestDisease.FarmID != *filter.FarmID {
			continue
		}
		if filter.Severity != "" && d.PestDisease.SeverityLevel != filter.Severity {
			continue
		}
		out = append(out, *d.PestDisease)
	}
	return out, nil
}

func (s *memoryStore) ListMarketPredictions(ctx context.Context, filter models.MarketPredictionFilter) ([]models.MarketPricePrediction, error) {
	var out []models.MarketPricePrediction
	for _, d := range s.detailsOf(models.RecommendationMarketTiming) {
		out = append(out, *d.MarketPrice)
	}
	return out, nil
}

func (s *memoryStore) ListResourceOptimizations(ctx context.Context, filter models.ResourceOptimizationFilter) ([]models.ResourceOptimization, error) {
	var out []models.ResourceOptimization
	for _, d := range s.detailsOf(models.RecommendationResourceOptimization) {
		out = append(out, *d.Resource)
	}
	return out, nil
}

func (s *memoryStore) farmAdvisories(farmID uuid.UUID) []models.Advisory {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Advisory
	for _, id := range s.order {
		if a := s.advisories[id]; a.FarmID == farmID {
			out = append(out, *a)
		}
	}
	return out
}

func (s *memoryStore) GetDashboardCounts(ctx context.Context, farmID uuid.UUID) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{FarmID: farmID}
	var ratings, rated int
	for _, a := range s.farmAdvisories(farmID) {
		if a.IsActive {
			stats.TotalActive++
			if a.Priority == models.PriorityHigh || a.Priority == models.PriorityUrgent {
				stats.HighPriority++
			}
		}
		if a.IsImplemented {
			stats.Implemented++
		}
		if a.FeedbackRating != nil {
			ratings += *a.FeedbackRating
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = float64(ratings) / float64(rated)
	}
	return stats, nil
}

func (s *memoryStore) ListUrgentAdvisories(ctx context.Context, farmID uuid.UUID, limit int) ([]models.Advisory, error) {
	var out []models.Advisory
	for _, a := range s.farmAdvisories(farmID) {
		if a.IsActive && a.Priority == models.PriorityUrgent {
			out = append(out, a)
		}
	}
	return out[:min(limit, len(out))], nil
}

func (s *memoryStore) ListRecentPestAlerts(ctx context.Context, farmID uuid.UUID, limit int) ([]models.PestDiseaseAlert, error) {
	alerts, _ := s.ListPestAlerts(ctx, models.PestAlertFilter{FarmID: &farmID})
	return alerts[:min(limit, len(alerts))], nil
}

func (s *memoryStore) ListUpcomingWeather(ctx context.Context, farmID uuid.UUID, now time.Time, limit int) ([]models.WeatherAdvisory, error) {
	var out []models.WeatherAdvisory
	for _, d := range s.detailsOf(models.RecommendationWeatherBased) {
		if d.Weather.FarmID == farmID && !d.Weather.ValidUntil.Before(now) {
			out = append(out, *d.Weather)
		}
	}
	slices.SortFunc(out, func(a, b models.WeatherAdvisory) int { return a.ValidFrom.Compare(b.ValidFrom) })
	return out[:min(limit, len(out))], nil
}

// ============================================================================
// PUBLISHER AND CACHE
// ============================================================================

type recordingPublisher struct {
	mu     sync.Mutex
	runs   []*models.RunResult
	urgent []models.Advisory
	err    error
}

func (p *recordingPublisher) PublishRunCompleted(ctx context.Context, userID string, result *models.RunResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runs = append(p.runs, result)
	return p.err
}

func (p *recordingPublisher) PublishUrgentAdvisory(ctx context.Context, advisory models.Advisory) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.urgent = append(p.urgent, advisory)
	return p.err
}

type memoryCache struct {
	mu          sync.Mutex
	dashboards  map[uuid.UUID]models.DashboardStats
	runs        map[uuid.UUID]models.RunResult
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		dashboards: map[uuid.UUID]models.DashboardStats{},
		runs:       map[uuid.UUID]models.RunResult{},
	}
}

func (c *memoryCache) GetDashboard(ctx context.Context, farmID uuid.UUID) (*models.DashboardStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats, ok := c.dashboards[farmID]
	if !ok {
		return nil, false
	}
	return &stats, true
}

func (c *memoryCache) SetDashboard(ctx context.Context, stats *models.DashboardStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dashboards[stats.FarmID] = *stats
	return nil
}

func (c *memoryCache) SetLatestRun(ctx context.Context, result *models.RunResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs[result.FarmID] = *result
	return nil
}

func (c *memoryCache) GetLatestRun(ctx context.Context, farmID uuid.UUID) (*models.RunResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	run, ok := c.runs[farmID]
	if !ok {
		return nil, models.NewNotFound("latest run", farmID.String())
	}
	return &run, nil
}

func (c *memoryCache) Invalidate(ctx context.Context, farmID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.dashboards, farmID)
	c.invalidated++
	return nil
}

// ============================================================================
// FIXTURES
// ============================================================================

// constantSource always returns the same draw, which keeps every generator at
// a predictable point of its range.
type constantSource struct {
	f float64
}

func (s constantSource) Float64() float64 { return s.f }

func (s constantSource) IntN(n int) int {
	return min(int(s.f*float64(n)), n-1)
}

var testNow = time.Date(2025, time.July, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testCrops(names ...string) []models.Crop {
	crops := make([]models.Crop, 0, len(names))
	for _, name := range names {
		crops = append(crops, models.Crop{ID: uuid.New(), Name: name})
	}
	return crops
}

func dayOffset(days int) *time.Time {
	t := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &t
}
