package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"recommendation-service/internal/models"
)

type FarmLister interface {
	ListActiveFarms(ctx context.Context) ([]models.Farm, error)
}

type FarmRunner interface {
	Run(ctx context.Context, farmID uuid.UUID, userID string) (*models.RunResult, error)
}

// NewFarmRefreshJob returns the scheduled job that queues one pipeline run per
// active farm, executed as the farm's owner. It blocks until every farm is
// queued on farmPool, so it must run outside farmPool.
func NewFarmRefreshJob(farms FarmLister, runner FarmRunner, farmPool Pool) Job {
	return func(ctx context.Context) error {
		active, err := farms.ListActiveFarms(ctx)
		if err != nil {
			return fmt.Errorf("failed to list active farms: %w", err)
		}

		slog.Info("Scheduling recommendation refresh", "farm_count", len(active))
		for i, farm := range active {
			if err := farmPool.SubmitJob(ctx, farmRunJob(runner, farm)); err != nil {
				return fmt.Errorf("queued %d of %d farm refreshes: %w", i, len(active), err)
			}
		}
		return nil
	}
}

func farmRunJob(runner FarmRunner, farm models.Farm) Job {
	return func(ctx context.Context) error {
		result, err := runner.Run(ctx, farm.ID, farm.OwnerID)
		if err != nil {
			return fmt.Errorf("refresh of farm %s failed: %w", farm.ID, err)
		}
		slog.Info("Farm refresh completed", "farm_id", farm.ID, "total", result.TotalRecommendations)
		return nil
	}
}
