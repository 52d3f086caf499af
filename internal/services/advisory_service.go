package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"recommendation-service/internal/models"
	utils "recommendation-service/shared/utils"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AdvisoryService covers everything a user does with existing advisories:
// listing, detail views, state changes and feedback.
type AdvisoryService struct {
	farms FarmReader
	store RecommendationStore
	cache DashboardCache
	now   func() time.Time
}

func NewAdvisoryService(farms FarmReader, store RecommendationStore, cache DashboardCache) *AdvisoryService {
	return &AdvisoryService{
		farms: farms,
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// ownedAdvisory loads the advisory and hides it from anyone but its user.
func (s *AdvisoryService) ownedAdvisory(ctx context.Context, id uuid.UUID, userID string) (*models.Advisory, error) {
	advisory, err := s.store.GetAdvisory(ctx, id)
	if err != nil {
		return nil, err
	}
	if advisory.UserID != userID {
		return nil, models.NewNotFound("advisory", id.String())
	}
	return advisory, nil
}

// ============================================================================
// STATE MACHINE
// ============================================================================

// Implement marks the advisory implemented. It stays active.
func (s *AdvisoryService) Implement(ctx context.Context, id uuid.UUID, userID string) (*models.Advisory, error) {
	return s.transition(ctx, id, userID, func(a *models.Advisory) {
		implementedAt := s.now()
		a.IsImplemented = true
		a.ImplementedAt = &implementedAt
	})
}

func (s *AdvisoryService) Dismiss(ctx context.Context, id uuid.UUID, userID string) (*models.Advisory, error) {
	return s.transition(ctx, id, userID, func(a *models.Advisory) {
		a.IsActive = false
	})
}

func (s *AdvisoryService) Reactivate(ctx context.Context, id uuid.UUID, userID string) (*models.Advisory, error) {
	return s.transition(ctx, id, userID, func(a *models.Advisory) {
		a.IsActive = true
	})
}

// ApplyAction dispatches one of implement, dismiss or reactivate.
func (s *AdvisoryService) ApplyAction(ctx context.Context, id uuid.UUID, userID string, action models.AdvisoryAction) (*models.ActionResult, error) {
	var (
		advisory *models.Advisory
		message  string
		err      error
	)

	switch action {
	case models.ActionImplement:
		advisory, err = s.Implement(ctx, id, userID)
		message = "Recommendation implemented"
	case models.ActionDismiss:
		advisory, err = s.Dismiss(ctx, id, userID)
		message = "Recommendation dismissed"
	case models.ActionReactivate:
		advisory, err = s.Reactivate(ctx, id, userID)
		message = "Recommendation reactivated"
	default:
		return nil, models.NewValidation("action", fmt.Sprintf("invalid action %q", action))
	}
	if err != nil {
		return nil, err
	}

	return &models.ActionResult{Advisory: *advisory, Message: message}, nil
}

func (s *AdvisoryService) transition(ctx context.Context, id uuid.UUID, userID string, apply func(*models.Advisory)) (*models.Advisory, error) {
	advisory, err := s.ownedAdvisory(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	apply(advisory)
	if err := s.store.UpdateAdvisoryState(ctx, advisory); err != nil {
		return nil, fmt.Errorf("failed to update advisory state: %w", err)
	}

	slog.Info("advisory state changed",
		"advisory_id", advisory.ID,
		"status", advisory.Status(),
		"user_id", userID)
	s.invalidate(ctx, advisory.FarmID)
	return advisory, nil
}

// ============================================================================
// FEEDBACK
// ============================================================================

// SubmitFeedback creates the caller's feedback for the advisory, or replaces
// it when one exists.
func (s *AdvisoryService) SubmitFeedback(ctx context.Context, id uuid.UUID, userID string, req models.SubmitFeedbackRequest) (*models.RecommendationFeedback, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, models.NewValidation(errs[0].Field, utils.JoinValidationErrors(errs))
	}

	advisory, err := s.ownedAdvisory(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	feedback := &models.RecommendationFeedback{
		AdvisoryID:               advisory.ID,
		UserID:                   userID,
		UsefulnessRating:         req.UsefulnessRating,
		AccuracyRating:           req.AccuracyRating,
		ImplementationDifficulty: req.ImplementationDifficulty,
		WasImplemented:           req.WasImplemented,
		OutcomeDescription:       req.OutcomeDescription,
		Comments:                 req.Comments,
		WouldRecommend:           req.WouldRecommend,
	}
	if err := s.store.UpsertFeedback(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	slog.Info("feedback recorded",
		"advisory_id", advisory.ID,
		"user_id", userID,
		"usefulness_rating", feedback.UsefulnessRating)
	s.invalidate(ctx, advisory.FarmID)
	return feedback, nil
}

// ============================================================================
// QUERIES
// ============================================================================

// GetAdvisoryView resolves the detail record and the caller's feedback.
func (s *AdvisoryService) GetAdvisoryView(ctx context.Context, id uuid.UUID, userID string) (*models.AdvisoryView, error) {
	advisory, err := s.ownedAdvisory(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	detail, err := s.store.GetAdvisoryDetail(ctx, advisory)
	if err != nil {
		return nil, err
	}
	feedback, err := s.store.GetFeedback(ctx, advisory.ID, userID)
	if err != nil {
		return nil, err
	}

	return &models.AdvisoryView{
		Advisory:  *advisory,
		Detail:    detail,
		Feedback:  feedback,
		IsExpired: advisory.IsExpired(s.now()),
	}, nil
}

// ListAdvisories normalises paging and validates enum filters before querying.
// An empty status means active.
func (s *AdvisoryService) ListAdvisories(ctx context.Context, filter models.AdvisoryFilter) ([]models.Advisory, *utils.Pagination, error) {
	if filter.Type != "" && !models.IsValidRecommendationType(filter.Type) {
		return nil, nil, models.NewValidation("type", fmt.Sprintf("unknown recommendation type %q", filter.Type))
	}
	if filter.Priority != "" && !models.IsValidPriority(filter.Priority) {
		return nil, nil, models.NewValidation("priority", fmt.Sprintf("unknown priority %q", filter.Priority))
	}
	if filter.Status == "" {
		filter.Status = models.AdvisoryStatusActive
	}
	if !models.IsValidAdvisoryStatus(filter.Status) {
		return nil, nil, models.NewValidation("status", fmt.Sprintf("unknown status %q", filter.Status))
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageSize
	}
	filter.Limit = min(filter.Limit, MaxPageSize)

	advisories, total, err := s.store.ListAdvisories(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return advisories, utils.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *AdvisoryService) ListPestAlerts(ctx context.Context, filter models.PestAlertFilter) (*models.PestAlertList, error) {
	if filter.Severity != "" && !models.IsValidSeverity(filter.Severity) {
		return nil, models.NewValidation("severity", fmt.Sprintf("unknown severity %q", filter.Severity))
	}
	if filter.Type != "" && !models.IsValidAlertKind(filter.Type) {
		return nil, models.NewValidation("type", fmt.Sprintf("unknown alert type %q", filter.Type))
	}

	alerts, err := s.store.ListPestAlerts(ctx, filter)
	if err != nil {
		return nil, err
	}

	recentSince := s.now().AddDate(0, 0, -7)
	list := &models.PestAlertList{Alerts: alerts}
	for _, alert := range alerts {
		if alert.IsActive {
			list.Stats.TotalActive++
			if alert.SeverityLevel == models.SeverityCritical {
				list.Stats.CriticalAlerts++
			}
		}
		if !alert.AlertDate.Before(recentSince) {
			list.Stats.RecentAlerts++
		}
	}
	return list, nil
}

func (s *AdvisoryService) ListMarketPredictions(ctx context.Context, filter models.MarketPredictionFilter) ([]models.MarketPricePrediction, error) {
	return s.store.ListMarketPredictions(ctx, filter)
}

func (s *AdvisoryService) ListResourceOptimizations(ctx context.Context, filter models.ResourceOptimizationFilter) (*models.ResourceOptimizationList, error) {
	if filter.ResourceType != "" && !models.IsValidResourceType(filter.ResourceType) {
		return nil, models.NewValidation("resource_type", fmt.Sprintf("unknown resource type %q", filter.ResourceType))
	}

	optimizations, err := s.store.ListResourceOptimizations(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := &models.ResourceOptimizationList{Optimizations: optimizations}
	for _, o := range optimizations {
		list.TotalSavings += o.PotentialSavings
	}
	return list, nil
}

func (s *AdvisoryService) invalidate(ctx context.Context, farmID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, farmID); err != nil {
		slog.Warn("failed to invalidate dashboard cache", "farm_id", farmID, "error", err)
	}
}
