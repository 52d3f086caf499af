package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recommendation-service/internal/models"
)

// FarmRepository reads the farm, field, crop and crop_cycle tables. This
// service never writes them.
type FarmRepository struct {
	db *sqlx.DB
}

func NewFarmRepository(db *sqlx.DB) *FarmRepository {
	return &FarmRepository{db: db}
}

const cropCycleColumns = `
	cc.id, cc.field_id, fd.name AS field_name, cc.crop_id, c.name AS crop_name,
	cc.planting_date, cc.harvest_date, cc.actual_harvest_date, cc.status`

func (r *FarmRepository) GetFarm(ctx context.Context, farmID uuid.UUID) (*models.Farm, error) {
	query := `
		SELECT id, owner_id, name, location, is_active, created_at
		FROM farm
		WHERE id = $1`

	var farm models.Farm
	if err := r.db.GetContext(ctx, &farm, query, farmID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFound("farm", farmID.String())
		}
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}
	return &farm, nil
}

func (r *FarmRepository) ListActiveFarms(ctx context.Context) ([]models.Farm, error) {
	query := `
		SELECT id, owner_id, name, location, is_active, created_at
		FROM farm
		WHERE is_active = TRUE
		ORDER BY created_at`

	var farms []models.Farm
	if err := r.db.SelectContext(ctx, &farms, query); err != nil {
		return nil, fmt.Errorf("failed to list active farms: %w", err)
	}
	return farms, nil
}

func (r *FarmRepository) ListFields(ctx context.Context, farmID uuid.UUID) ([]models.Field, error) {
	query := `
		SELECT id, farm_id, name, size_acres, is_active
		FROM field
		WHERE farm_id = $1
		ORDER BY name`

	var fields []models.Field
	if err := r.db.SelectContext(ctx, &fields, query, farmID); err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	return fields, nil
}

func (r *FarmRepository) ListCrops(ctx context.Context) ([]models.Crop, error) {
	query := `
		SELECT id, name, growing_season, average_growing_period_days
		FROM crop
		ORDER BY name`

	var crops []models.Crop
	if err := r.db.SelectContext(ctx, &crops, query); err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	return crops, nil
}

func (r *FarmRepository) ListFieldHistory(ctx context.Context, fieldID uuid.UUID, asOf time.Time, limit int) ([]models.CropCycle, error) {
	query := `
		SELECT ` + cropCycleColumns + `
		FROM crop_cycle cc
		JOIN field fd ON fd.id = cc.field_id
		JOIN crop c ON c.id = cc.crop_id
		WHERE cc.field_id = $1 AND cc.harvest_date < $2::date
		ORDER BY cc.harvest_date DESC
		LIMIT $3`

	var cycles []models.CropCycle
	if err := r.db.SelectContext(ctx, &cycles, query, fieldID, asOf, limit); err != nil {
		return nil, fmt.Errorf("failed to list field history: %w", err)
	}
	return cycles, nil
}

func (r *FarmRepository) ListActiveCycles(ctx context.Context, farmID uuid.UUID, asOf time.Time) ([]models.CropCycle, error) {
	query := `
		SELECT ` + cropCycleColumns + `
		FROM crop_cycle cc
		JOIN field fd ON fd.id = cc.field_id
		JOIN crop c ON c.id = cc.crop_id
		WHERE fd.farm_id = $1
		  AND cc.planting_date <= $2::date
		  AND cc.harvest_date >= $2::date
		ORDER BY cc.planting_date`

	var cycles []models.CropCycle
	if err := r.db.SelectContext(ctx, &cycles, query, farmID, asOf); err != nil {
		return nil, fmt.Errorf("failed to list active cycles: %w", err)
	}
	return cycles, nil
}

func (r *FarmRepository) ListUpcomingHarvests(ctx context.Context, farmID uuid.UUID, asOf time.Time, days int) ([]models.CropCycle, error) {
	query := `
		SELECT ` + cropCycleColumns + `
		FROM crop_cycle cc
		JOIN field fd ON fd.id = cc.field_id
		JOIN crop c ON c.id = cc.crop_id
		WHERE fd.farm_id = $1
		  AND cc.harvest_date BETWEEN $2::date AND $2::date + $3::int
		ORDER BY cc.harvest_date`

	var cycles []models.CropCycle
	if err := r.db.SelectContext(ctx, &cycles, query, farmID, asOf, days); err != nil {
		return nil, fmt.Errorf("failed to list upcoming harvests: %w", err)
	}
	return cycles, nil
}
