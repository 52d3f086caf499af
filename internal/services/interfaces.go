package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"recommendation-service/internal/models"
)

// FarmReader is read access to the farm records owned by the farm service.
type FarmReader interface {
	GetFarm(ctx context.Context, farmID uuid.UUID) (*models.Farm, error)
	ListActiveFarms(ctx context.Context) ([]models.Farm, error)
	ListFields(ctx context.Context, farmID uuid.UUID) ([]models.Field, error)
	ListCrops(ctx context.Context) ([]models.Crop, error)
	// ListFieldHistory returns cycles harvested before asOf, most recent first.
	ListFieldHistory(ctx context.Context, fieldID uuid.UUID, asOf time.Time, limit int) ([]models.CropCycle, error)
	// ListActiveCycles returns cycles with planting_date <= asOf <= harvest_date.
	ListActiveCycles(ctx context.Context, farmID uuid.UUID, asOf time.Time) ([]models.CropCycle, error)
	// ListUpcomingHarvests returns cycles with a harvest date in [asOf, asOf+days].
	ListUpcomingHarvests(ctx context.Context, farmID uuid.UUID, asOf time.Time, days int) ([]models.CropCycle, error)
}

// RecommendationStore persists advisories, their detail records and feedback.
type RecommendationStore interface {
	// SaveAdvisory writes the detail record and the advisory referencing it
	// together, setting both IDs and advisory.DetailID.
	SaveAdvisory(ctx context.Context, advisory *models.Advisory, detail *models.AdvisoryDetail) error
	GetAdvisory(ctx context.Context, id uuid.UUID) (*models.Advisory, error)
	GetAdvisoryDetail(ctx context.Context, advisory *models.Advisory) (*models.AdvisoryDetail, error)
	UpdateAdvisoryState(ctx context.Context, advisory *models.Advisory) error
	ListAdvisories(ctx context.Context, filter models.AdvisoryFilter) ([]models.Advisory, int, error)

	// UpsertFeedback creates or updates the (advisory, user) feedback and
	// copies the rating onto the advisory.
	UpsertFeedback(ctx context.Context, feedback *models.RecommendationFeedback) error
	GetFeedback(ctx context.Context, advisoryID uuid.UUID, userID string) (*models.RecommendationFeedback, error)

	ListPestAlerts(ctx context.Context, filter models.PestAlertFilter) ([]models.PestDiseaseAlert, error)
	ListMarketPredictions(ctx context.Context, filter models.MarketPredictionFilter) ([]models.MarketPricePrediction, error)
	ListResourceOptimizations(ctx context.Context, filter models.ResourceOptimizationFilter) ([]models.ResourceOptimization, error)

	GetDashboardCounts(ctx context.Context, farmID uuid.UUID) (*models.DashboardStats, error)
	ListUrgentAdvisories(ctx context.Context, farmID uuid.UUID, limit int) ([]models.Advisory, error)
	ListRecentPestAlerts(ctx context.Context, farmID uuid.UUID, limit int) ([]models.PestDiseaseAlert, error)
	ListUpcomingWeather(ctx context.Context, farmID uuid.UUID, now time.Time, limit int) ([]models.WeatherAdvisory, error)
}

// EventPublisher announces pipeline results. Failures are logged by callers
// and never fail a run.
type EventPublisher interface {
	PublishRunCompleted(ctx context.Context, userID string, result *models.RunResult) error
	PublishUrgentAdvisory(ctx context.Context, advisory models.Advisory) error
}

// DashboardCache stores computed dashboard stats per farm.
type DashboardCache interface {
	GetDashboard(ctx context.Context, farmID uuid.UUID) (*models.DashboardStats, bool)
	SetDashboard(ctx context.Context, stats *models.DashboardStats) error
	SetLatestRun(ctx context.Context, result *models.RunResult) error
	GetLatestRun(ctx context.Context, farmID uuid.UUID) (*models.RunResult, error)
	Invalidate(ctx context.Context, farmID uuid.UUID) error
}
