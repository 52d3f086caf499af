package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"recommendation-service/internal/ai/engine"
	"recommendation-service/internal/models"
)

// RecommendationService runs the five generators for a farm and persists what
// they produce.
type RecommendationService struct {
	farms     FarmReader
	store     RecommendationStore
	publisher EventPublisher
	cache     DashboardCache

	newSource func(farmID uuid.UUID, asOf time.Time) engine.RandomSource
	now       func() time.Time
}

// NewRecommendationService builds the aggregator. cache may be nil; a zero seed
// gives every run fresh randomness, any other seed is mixed with the farm and day.
func NewRecommendationService(farms FarmReader, store RecommendationStore, publisher EventPublisher, cache DashboardCache, seed uint64) *RecommendationService {
	return &RecommendationService{
		farms:     farms,
		store:     store,
		publisher: publisher,
		cache:     cache,
		newSource: func(farmID uuid.UUID, asOf time.Time) engine.RandomSource {
			return engine.NewRandomSource(engine.RunSeed(seed, farmID, asOf))
		},
		now:       time.Now,
	}
}

// authorizeFarm returns the farm when userID owns it. A farm owned by someone
// else is reported as not found.
func authorizeFarm(ctx context.Context, farms FarmReader, farmID uuid.UUID, userID string) (*models.Farm, error) {
	farm, err := farms.GetFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if farm.OwnerID != userID {
		return nil, models.NewNotFound("farm", farmID.String())
	}
	return farm, nil
}

// Run generates crop, weather, pest/disease, resource and market advisories in
// that order. A failing generator aborts the run; advisories saved before the
// failure stay.
func (s *RecommendationService) Run(ctx context.Context, farmID uuid.UUID, userID string) (*models.RunResult, error) {
	farm, err := authorizeFarm(ctx, s.farms, farmID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	run := &pipelineRun{
		service: s,
		farm:    farm,
		userID:  userID,
		now:     now,
		engine:  engine.New(s.newSource(farm.ID, now)),
		result:  models.NewRunResult(farm.ID, now),
	}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"crop_selection", run.cropAdvisories},
		{"weather_based", run.weatherAdvisories},
		{"pest_disease", run.pestAdvisories},
		{"resource_optimization", run.resourceAdvisories},
		{"market_timing", run.marketAdvisories},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			slog.Error("recommendation generator failed",
				"farm_id", farm.ID, "generator", step.name, "saved", run.result.TotalRecommendations, "error", err)
			s.invalidate(ctx, farm.ID)
			return nil, fmt.Errorf("%s generator failed: %w", step.name, err)
		}
	}

	slog.Info("recommendation run completed",
		"farm_id", farm.ID,
		"user_id", userID,
		"total", run.result.TotalRecommendations,
		"high_priority", run.result.HighPriorityCount,
		"urgent", run.result.UrgentCount)

	s.invalidate(ctx, farm.ID)
	if s.cache != nil {
		if err := s.cache.SetLatestRun(ctx, run.result); err != nil {
			slog.Warn("failed to cache run summary", "farm_id", farm.ID, "error", err)
		}
	}
	if err := s.publisher.PublishRunCompleted(ctx, userID, run.result); err != nil {
		slog.Warn("failed to publish run completed event", "farm_id", farm.ID, "error", err)
	}

	return run.result, nil
}

// LatestRun returns the cached counters of the farm's most recent run.
func (s *RecommendationService) LatestRun(ctx context.Context, farmID uuid.UUID, userID string) (*models.RunResult, error) {
	if _, err := authorizeFarm(ctx, s.farms, farmID, userID); err != nil {
		return nil, err
	}
	if s.cache == nil {
		return nil, models.NewNotFound("latest run", farmID.String())
	}
	return s.cache.GetLatestRun(ctx, farmID)
}

func (s *RecommendationService) invalidate(ctx context.Context, farmID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, farmID); err != nil {
		slog.Warn("failed to invalidate dashboard cache", "farm_id", farmID, "error", err)
	}
}

// pipelineRun carries the state of one Run.
type pipelineRun struct {
	service *RecommendationService
	farm    *models.Farm
	userID  string
	now     time.Time
	engine  *engine.Engine
	result  *models.RunResult
}

func (r *pipelineRun) save(ctx context.Context, advisory models.Advisory, detail *models.AdvisoryDetail) error {
	advisory.FarmID = r.farm.ID
	advisory.UserID = r.userID
	advisory.CreatedAt = r.now

	if err := r.service.store.SaveAdvisory(ctx, &advisory, detail); err != nil {
		return err
	}
	r.result.Add(advisory)

	if advisory.Priority == models.PriorityUrgent {
		if err := r.service.publisher.PublishUrgentAdvisory(ctx, advisory); err != nil {
			slog.Warn("failed to publish urgent advisory", "advisory_id", advisory.ID, "error", err)
		}
	}
	return nil
}

func (r *pipelineRun) cropAdvisories(ctx context.Context) error {
	fields, err := r.service.farms.ListFields(ctx, r.farm.ID)
	if err != nil {
		return err
	}
	crops, err := r.service.farms.ListCrops(ctx)
	if err != nil {
		return err
	}

	for _, field := range fields {
		history, err := r.service.farms.ListFieldHistory(ctx, field.ID, r.now, engine.FieldHistoryLimit)
		if err != nil {
			return err
		}

		scores := r.engine.ScoreCropSuitability(field, crops, history, r.now)
		for _, score := range scores[:min(engine.TopCropsPerField, len(scores))] {
			detail := score.Result
			if err := r.save(ctx, engine.CropAdvisory(field, score, r.now), &models.AdvisoryDetail{
				Type:            models.RecommendationCropSelection,
				CropSuitability: &detail,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *pipelineRun) weatherAdvisories(ctx context.Context) error {
	for _, forecast := range r.engine.ForecastWeather(r.now) {
		detail := forecast.Detail
		detail.FarmID = r.farm.ID
		if err := r.save(ctx, engine.WeatherAdvisory(forecast, r.now), &models.AdvisoryDetail{
			Type:    models.RecommendationWeatherBased,
			Weather: &detail,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *pipelineRun) pestAdvisories(ctx context.Context) error {
	cycles, err := r.service.farms.ListActiveCycles(ctx, r.farm.ID, r.now)
	if err != nil {
		return err
	}

	for _, cycle := range cycles {
		if !engine.IsActiveCycle(cycle, r.now) {
			continue
		}
		for _, risk := range r.engine.AssessPestDiseaseRisk(cycle, r.now) {
			if !risk.ShouldPersist {
				continue
			}
			detail := risk.Alert
			detail.FarmID = r.farm.ID
			if err := r.save(ctx, engine.PestAdvisory(risk, r.now), &models.AdvisoryDetail{
				Type:        models.RecommendationPestDisease,
				PestDisease: &detail,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *pipelineRun) resourceAdvisories(ctx context.Context) error {
	for _, analysis := range r.engine.AnalyzeResources() {
		if !analysis.Worthwhile() {
			continue
		}
		detail := analysis.Detail
		detail.FarmID = r.farm.ID
		if err := r.save(ctx, engine.ResourceAdvisory(analysis, r.now), &models.AdvisoryDetail{
			Type:     models.RecommendationResourceOptimization,
			Resource: &detail,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *pipelineRun) marketAdvisories(ctx context.Context) error {
	cycles, err := r.service.farms.ListUpcomingHarvests(ctx, r.farm.ID, r.now, engine.MarketHorizonDays)
	if err != nil {
		return err
	}

	for _, cycle := range cycles {
		if !engine.HarvestWithin(cycle, r.now, engine.MarketHorizonDays) {
			continue
		}
		forecast := r.engine.PredictMarketTiming(cycle, r.now)
		detail := forecast.Detail
		if err := r.save(ctx, engine.MarketAdvisory(forecast, r.now), &models.AdvisoryDetail{
			Type:        models.RecommendationMarketTiming,
			MarketPrice: &detail,
		}); err != nil {
			return err
		}
	}
	return nil
}
