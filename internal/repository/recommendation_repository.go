package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recommendation-service/internal/models"
	utils "recommendation-service/shared/utils"
)

type RecommendationRepository struct {
	db *sqlx.DB
}

func NewRecommendationRepository(db *sqlx.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

const advisoryColumns = `
	a.id, a.recommendation_type, a.title, a.description, a.action_required,
	a.confidence_level, a.priority, a.model_version, a.algorithm_used,
	a.data_points_used, a.accuracy_score, a.farm_id, a.user_id, a.crop_id,
	a.field_id, a.detail_id, a.created_at, a.valid_until, a.is_active,
	a.is_implemented, a.implemented_at, a.feedback_rating, a.feedback_notes,
	a.metadata`

// ============================================================================
// ADVISORY + DETAIL WRITES
// ============================================================================

func (r *RecommendationRepository) SaveAdvisory(ctx context.Context, advisory *models.Advisory, detail *models.AdvisoryDetail) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("failed to rollback advisory transaction", "error", rbErr)
			}
		}
	}()

	var detailID uuid.UUID
	detailID, err = insertDetail(ctx, tx, detail)
	if err != nil {
		return err
	}

	if advisory.ID == uuid.Nil {
		advisory.ID = uuid.New()
	}
	if advisory.CreatedAt.IsZero() {
		advisory.CreatedAt = time.Now()
	}
	advisory.DetailID = detailID

	query := `
		INSERT INTO advisory (
			id, recommendation_type, title, description, action_required,
			confidence_level, priority, model_version, algorithm_used,
			data_points_used, accuracy_score, farm_id, user_id, crop_id,
			field_id, detail_id, created_at, valid_until, is_active,
			is_implemented, implemented_at, feedback_rating, feedback_notes,
			metadata
		) VALUES (
			:id, :recommendation_type, :title, :description, :action_required,
			:confidence_level, :priority, :model_version, :algorithm_used,
			:data_points_used, :accuracy_score, :farm_id, :user_id, :crop_id,
			:field_id, :detail_id, :created_at, :valid_until, :is_active,
			:is_implemented, :implemented_at, :feedback_rating, :feedback_notes,
			:metadata
		)`

	if _, err = tx.NamedExecContext(ctx, query, advisory); err != nil {
		err = mapWriteError(err, "advisory")
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit advisory: %w", err)
	}
	return nil
}

func insertDetail(ctx context.Context, tx *sqlx.Tx, detail *models.AdvisoryDetail) (uuid.UUID, error) {
	if detail == nil {
		return uuid.Nil, models.NewValidation("detail", "advisory detail is required")
	}
	now := time.Now()

	switch detail.Type {
	case models.RecommendationCropSelection:
		d := detail.CropSuitability
		if d == nil {
			break
		}
		d.ID, d.CreatedAt = uuid.New(), now
		// re-runs in the same season refresh the existing row
		query := `
			INSERT INTO crop_suitability_result (
				id, farm_id, field_id, crop_id, crop_name, season, suitability_score,
				profit_potential, risk_level, soil_compatibility, climate_compatibility,
				water_requirement_match, market_demand_score, price_trend_score,
				rotation_benefit, competition_level, optimal_planting_start,
				optimal_planting_end, expected_harvest_date, confidence_level, created_at
			) VALUES (
				:id, :farm_id, :field_id, :crop_id, :crop_name, :season, :suitability_score,
				:profit_potential, :risk_level, :soil_compatibility, :climate_compatibility,
				:water_requirement_match, :market_demand_score, :price_trend_score,
				:rotation_benefit, :competition_level, :optimal_planting_start,
				:optimal_planting_end, :expected_harvest_date, :confidence_level, :created_at
			)
			ON CONFLICT (farm_id, field_id, crop_id, season) DO UPDATE SET
				suitability_score = EXCLUDED.suitability_score,
				profit_potential = EXCLUDED.profit_potential,
				risk_level = EXCLUDED.risk_level,
				soil_compatibility = EXCLUDED.soil_compatibility,
				climate_compatibility = EXCLUDED.climate_compatibility,
				water_requirement_match = EXCLUDED.water_requirement_match,
				market_demand_score = EXCLUDED.market_demand_score,
				price_trend_score = EXCLUDED.price_trend_score,
				rotation_benefit = EXCLUDED.rotation_benefit,
				competition_level = EXCLUDED.competition_level,
				optimal_planting_start = EXCLUDED.optimal_planting_start,
				optimal_planting_end = EXCLUDED.optimal_planting_end,
				expected_harvest_date = EXCLUDED.expected_harvest_date,
				confidence_level = EXCLUDED.confidence_level,
				created_at = EXCLUDED.created_at
			RETURNING id`
		return namedReturningID(ctx, tx, query, d, "crop_suitability_result", &d.ID)

	case models.RecommendationWeatherBased:
		d := detail.Weather
		if d == nil {
			break
		}
		d.ID, d.CreatedAt = uuid.New(), now
		query := `
			INSERT INTO weather_advisory (
				id, farm_id, weather_condition, temperature_range, humidity_level,
				precipitation_forecast, irrigation_advice, pest_risk_alert,
				harvest_timing_advice, field_work_recommendations, weather_data_source,
				forecast_accuracy, valid_from, valid_until, created_at
			) VALUES (
				:id, :farm_id, :weather_condition, :temperature_range, :humidity_level,
				:precipitation_forecast, :irrigation_advice, :pest_risk_alert,
				:harvest_timing_advice, :field_work_recommendations, :weather_data_source,
				:forecast_accuracy, :valid_from, :valid_until, :created_at
			)`
		return d.ID, namedInsert(ctx, tx, query, d, "weather_advisory")

	case models.RecommendationPestDisease:
		d := detail.PestDisease
		if d == nil {
			break
		}
		d.ID, d.AlertDate = uuid.New(), now
		query := `
			INSERT INTO pest_disease_alert (
				id, farm_id, crop_id, field_id, pest_or_disease_name, type, severity_level,
				probability_percentage, risk_factors, expected_impact, recommended_actions,
				treatment_options, prevention_measures, monitoring_schedule,
				expected_onset_date, prediction_model, confidence_score, is_active, alert_date
			) VALUES (
				:id, :farm_id, :crop_id, :field_id, :pest_or_disease_name, :type, :severity_level,
				:probability_percentage, :risk_factors, :expected_impact, :recommended_actions,
				:treatment_options, :prevention_measures, :monitoring_schedule,
				:expected_onset_date, :prediction_model, :confidence_score, :is_active, :alert_date
			)`
		return d.ID, namedInsert(ctx, tx, query, d, "pest_disease_alert")

	case models.RecommendationResourceOptimization:
		d := detail.Resource
		if d == nil {
			break
		}
		d.ID, d.CreatedAt = uuid.New(), now
		query := `
			INSERT INTO resource_optimization (
				id, farm_id, resource_type, current_usage_amount, current_usage_unit,
				current_cost, recommended_usage_amount, potential_savings,
				efficiency_improvement_percentage, optimization_method,
				implementation_timeline, required_investment, payback_period_days,
				environmental_benefit, sustainability_score, confidence_level, created_at
			) VALUES (
				:id, :farm_id, :resource_type, :current_usage_amount, :current_usage_unit,
				:current_cost, :recommended_usage_amount, :potential_savings,
				:efficiency_improvement_percentage, :optimization_method,
				:implementation_timeline, :required_investment, :payback_period_days,
				:environmental_benefit, :sustainability_score, :confidence_level, :created_at
			)`
		return d.ID, namedInsert(ctx, tx, query, d, "resource_optimization")

	case models.RecommendationMarketTiming:
		d := detail.MarketPrice
		if d == nil {
			break
		}
		d.ID, d.CreatedAt = uuid.New(), now
		query := `
			INSERT INTO market_price_prediction (
				id, crop_id, crop_name, region, current_price, predicted_price, price_unit,
				prediction_date, prediction_horizon_days, supply_demand_ratio,
				seasonal_factor, weather_impact_factor, recommended_action,
				optimal_selling_date, prediction_model, confidence_interval,
				accuracy_score, created_at
			) VALUES (
				:id, :crop_id, :crop_name, :region, :current_price, :predicted_price, :price_unit,
				:prediction_date, :prediction_horizon_days, :supply_demand_ratio,
				:seasonal_factor, :weather_impact_factor, :recommended_action,
				:optimal_selling_date, :prediction_model, :confidence_interval,
				:accuracy_score, :created_at
			)
			ON CONFLICT (crop_id, region, prediction_date) DO UPDATE SET
				current_price = EXCLUDED.current_price,
				predicted_price = EXCLUDED.predicted_price,
				prediction_horizon_days = EXCLUDED.prediction_horizon_days,
				supply_demand_ratio = EXCLUDED.supply_demand_ratio,
				seasonal_factor = EXCLUDED.seasonal_factor,
				weather_impact_factor = EXCLUDED.weather_impact_factor,
				recommended_action = EXCLUDED.recommended_action,
				optimal_selling_date = EXCLUDED.optimal_selling_date,
				confidence_interval = EXCLUDED.confidence_interval,
				accuracy_score = EXCLUDED.accuracy_score,
				created_at = EXCLUDED.created_at
			RETURNING id`
		return namedReturningID(ctx, tx, query, d, "market_price_prediction", &d.ID)
	}

	return uuid.Nil, models.NewValidation("detail", fmt.Sprintf("missing %s detail record", detail.Type))
}

func namedInsert(ctx context.Context, tx *sqlx.Tx, query string, arg any, resource string) error {
	if _, err := tx.NamedExecContext(ctx, query, arg); err != nil {
		return mapWriteError(err, resource)
	}
	return nil
}

// namedReturningID runs an upsert and stores the surviving row's id in dest.
func namedReturningID(ctx context.Context, tx *sqlx.Tx, query string, arg any, resource string, dest *uuid.UUID) (uuid.UUID, error) {
	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare %s upsert: %w", resource, err)
	}
	defer stmt.Close()

	if err := stmt.GetContext(ctx, dest, arg); err != nil {
		return uuid.Nil, mapWriteError(err, resource)
	}
	return *dest, nil
}

// ============================================================================
// ADVISORY READS AND STATE
// ============================================================================

func (r *RecommendationRepository) GetAdvisory(ctx context.Context, id uuid.UUID) (*models.Advisory, error) {
	query := `SELECT ` + advisoryColumns + ` FROM advisory a WHERE a.id = $1`

	var advisory models.Advisory
	if err := r.db.GetContext(ctx, &advisory, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFound("advisory", id.String())
		}
		return nil, fmt.Errorf("failed to get advisory: %w", err)
	}
	return &advisory, nil
}

func (r *RecommendationRepository) GetAdvisoryDetail(ctx context.Context, advisory *models.Advisory) (*models.AdvisoryDetail, error) {
	detail := &models.AdvisoryDetail{Type: advisory.RecommendationType}

	var err error
	switch advisory.RecommendationType {
	case models.RecommendationCropSelection:
		detail.CropSuitability = &models.CropSuitabilityResult{}
		err = r.db.GetContext(ctx, detail.CropSuitability, `SELECT * FROM crop_suitability_result WHERE id = $1`, advisory.DetailID)
	case models.RecommendationWeatherBased:
		detail.Weather = &models.WeatherAdvisory{}
		err = r.db.GetContext(ctx, detail.Weather, `SELECT * FROM weather_advisory WHERE id = $1`, advisory.DetailID)
	case models.RecommendationPestDisease:
		detail.PestDisease = &models.PestDiseaseAlert{}
		err = r.db.GetContext(ctx, detail.PestDisease, `SELECT * FROM pest_disease_alert WHERE id = $1`, advisory.DetailID)
	case models.RecommendationResourceOptimization:
		detail.Resource = &models.ResourceOptimization{}
		err = r.db.GetContext(ctx, detail.Resource, `SELECT * FROM resource_optimization WHERE id = $1`, advisory.DetailID)
	case models.RecommendationMarketTiming:
		detail.MarketPrice = &models.MarketPricePrediction{}
		err = r.db.GetContext(ctx, detail.MarketPrice, `SELECT * FROM market_price_prediction WHERE id = $1`, advisory.DetailID)
	default:
		return nil, fmt.Errorf("unknown recommendation type %q", advisory.RecommendationType)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFound(string(advisory.RecommendationType)+" detail", advisory.DetailID.String())
		}
		return nil, fmt.Errorf("failed to get advisory detail: %w", err)
	}
	return detail, nil
}

func (r *RecommendationRepository) UpdateAdvisoryState(ctx context.Context, advisory *models.Advisory) error {
	query := `
		UPDATE advisory
		SET is_active = $1, is_implemented = $2, implemented_at = $3
		WHERE id = $4`

	err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate,
		advisory.IsActive, advisory.IsImplemented, advisory.ImplementedAt, advisory.ID)
	if errors.Is(err, utils.ErrNoRowsAffected) {
		return models.NewNotFound("advisory", advisory.ID.String())
	}
	return err
}

// whereBuilder collects AND-ed conditions with positional placeholders.
type whereBuilder struct {
	conditions []string
	args       []any
}

func (w *whereBuilder) add(condition string, arg any) {
	w.args = append(w.args, arg)
	w.conditions = append(w.conditions, strings.ReplaceAll(condition, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) addRaw(condition string) {
	w.conditions = append(w.conditions, condition)
}

func (w *whereBuilder) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

func advisoryFilterWhere(filter models.AdvisoryFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("a.user_id = ?", filter.UserID)
	if filter.FarmID != nil {
		w.add("a.farm_id = ?", *filter.FarmID)
	}
	if filter.Type != "" {
		w.add("a.recommendation_type = ?", filter.Type)
	}
	if filter.Priority != "" {
		w.add("a.priority = ?", filter.Priority)
	}
	// implemented and dismissed overlap for advisories dismissed after implementation
	switch filter.Status {
	case models.AdvisoryStatusActive:
		w.addRaw("a.is_active = TRUE AND a.is_implemented = FALSE")
	case models.AdvisoryStatusImplemented:
		w.addRaw("a.is_implemented = TRUE")
	case models.AdvisoryStatusDismissed:
		w.addRaw("a.is_active = FALSE")
	}
	return w
}

func (r *RecommendationRepository) ListAdvisories(ctx context.Context, filter models.AdvisoryFilter) ([]models.Advisory, int, error) {
	where := advisoryFilterWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM advisory a`+where.String(), where.args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count advisories: %w", err)
	}

	args := append(append([]any{}, where.args...), filter.Limit, filter.Offset())
	query := fmt.Sprintf(`SELECT %s FROM advisory a%s ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`,
		advisoryColumns, where.String(), len(where.args)+1, len(where.args)+2)

	advisories := []models.Advisory{}
	if err := r.db.SelectContext(ctx, &advisories, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list advisories: %w", err)
	}
	return advisories, total, nil
}

// ============================================================================
// FEEDBACK
// ============================================================================

func (r *RecommendationRepository) UpsertFeedback(ctx context.Context, feedback *models.RecommendationFeedback) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("failed to rollback feedback transaction", "error", rbErr)
			}
		}
	}()

	now := time.Now()
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	feedback.CreatedAt, feedback.UpdatedAt = now, now

	query := `
		INSERT INTO recommendation_feedback (
			id, advisory_id, user_id, usefulness_rating, accuracy_rating,
			implementation_difficulty, was_implemented, outcome_description,
			comments, would_recommend, created_at, updated_at
		) VALUES (
			:id, :advisory_id, :user_id, :usefulness_rating, :accuracy_rating,
			:implementation_difficulty, :was_implemented, :outcome_description,
			:comments, :would_recommend, :created_at, :updated_at
		)
		ON CONFLICT (advisory_id, user_id) DO UPDATE SET
			usefulness_rating = EXCLUDED.usefulness_rating,
			accuracy_rating = EXCLUDED.accuracy_rating,
			implementation_difficulty = EXCLUDED.implementation_difficulty,
			was_implemented = EXCLUDED.was_implemented,
			outcome_description = EXCLUDED.outcome_description,
			comments = EXCLUDED.comments,
			would_recommend = EXCLUDED.would_recommend,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare feedback upsert: %w", err)
	}
	defer stmt.Close()

	var saved struct {
		ID        uuid.UUID `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err = stmt.GetContext(ctx, &saved, feedback); err != nil {
		err = mapWriteError(err, "recommendation_feedback")
		return err
	}
	feedback.ID, feedback.CreatedAt = saved.ID, saved.CreatedAt

	err = utils.ExecWithCheck(ctx, tx, `UPDATE advisory SET feedback_rating = $1, feedback_notes = $2 WHERE id = $3`,
		utils.ExecUpdate, feedback.UsefulnessRating, feedback.Comments, feedback.AdvisoryID)
	if errors.Is(err, utils.ErrNoRowsAffected) {
		err = models.NewNotFound("advisory", feedback.AdvisoryID.String())
	}
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feedback: %w", err)
	}
	return nil
}

func (r *RecommendationRepository) GetFeedback(ctx context.Context, advisoryID uuid.UUID, userID string) (*models.RecommendationFeedback, error) {
	query := `
		SELECT id, advisory_id, user_id, usefulness_rating, accuracy_rating,
			implementation_difficulty, was_implemented, outcome_description,
			comments, would_recommend, created_at, updated_at
		FROM recommendation_feedback
		WHERE advisory_id = $1 AND user_id = $2`

	var feedback models.RecommendationFeedback
	if err := r.db.GetContext(ctx, &feedback, query, advisoryID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return &feedback, nil
}

// ============================================================================
// DETAIL LISTINGS
// ============================================================================

func (r *RecommendationRepository) ListPestAlerts(ctx context.Context, filter models.PestAlertFilter) ([]models.PestDiseaseAlert, error) {
	w := &whereBuilder{}
	w.add("f.owner_id = ?", filter.OwnerID)
	if filter.FarmID != nil {
		w.add("p.farm_id = ?", *filter.FarmID)
	}
	if filter.Severity != "" {
		w.add("p.severity_level = ?", filter.Severity)
	}
	if filter.Type != "" {
		w.add("p.type = ?", filter.Type)
	}

	query := `SELECT p.* FROM pest_disease_alert p JOIN farm f ON f.id = p.farm_id` + w.String() + ` ORDER BY p.alert_date DESC`

	alerts := []models.PestDiseaseAlert{}
	if err := r.db.SelectContext(ctx, &alerts, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to list pest alerts: %w", err)
	}
	return alerts, nil
}

// ListMarketPredictions returns predictions referenced by the owner's advisories.
func (r *RecommendationRepository) ListMarketPredictions(ctx context.Context, filter models.MarketPredictionFilter) ([]models.MarketPricePrediction, error) {
	w := &whereBuilder{}
	w.add("EXISTS (SELECT 1 FROM advisory a WHERE a.detail_id = m.id AND a.user_id = ?)", filter.OwnerID)
	if filter.CropID != nil {
		w.add("m.crop_id = ?", *filter.CropID)
	}

	query := `SELECT m.* FROM market_price_prediction m` + w.String() + ` ORDER BY m.prediction_date DESC`

	predictions := []models.MarketPricePrediction{}
	if err := r.db.SelectContext(ctx, &predictions, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to list market predictions: %w", err)
	}
	return predictions, nil
}

func (r *RecommendationRepository) ListResourceOptimizations(ctx context.Context, filter models.ResourceOptimizationFilter) ([]models.ResourceOptimization, error) {
	w := &whereBuilder{}
	w.add("f.owner_id = ?", filter.OwnerID)
	if filter.FarmID != nil {
		w.add("o.farm_id = ?", *filter.FarmID)
	}
	if filter.ResourceType != "" {
		w.add("o.resource_type = ?", filter.ResourceType)
	}

	query := `SELECT o.* FROM resource_optimization o JOIN farm f ON f.id = o.farm_id` + w.String() + ` ORDER BY o.potential_savings DESC`

	optimizations := []models.ResourceOptimization{}
	if err := r.db.SelectContext(ctx, &optimizations, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to list resource optimizations: %w", err)
	}
	return optimizations, nil
}

// ============================================================================
// DASHBOARD
// ============================================================================

func (r *RecommendationRepository) GetDashboardCounts(ctx context.Context, farmID uuid.UUID) (*models.DashboardStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE a.is_active) AS total_active,
			COUNT(*) FILTER (WHERE a.is_active AND a.priority IN ('high', 'urgent')) AS high_priority,
			COUNT(*) FILTER (WHERE a.is_implemented) AS implemented,
			COALESCE((
				SELECT AVG(fb.usefulness_rating)
				FROM recommendation_feedback fb
				JOIN advisory fa ON fa.id = fb.advisory_id
				WHERE fa.farm_id = $1
			), 0) AS avg_rating
		FROM advisory a
		WHERE a.farm_id = $1`

	var row struct {
		TotalActive  int     `db:"total_active"`
		HighPriority int     `db:"high_priority"`
		Implemented  int     `db:"implemented"`
		AvgRating    float64 `db:"avg_rating"`
	}
	if err := r.db.GetContext(ctx, &row, query, farmID); err != nil {
		return nil, fmt.Errorf("failed to get dashboard counts: %w", err)
	}

	return &models.DashboardStats{
		FarmID:        farmID,
		TotalActive:   row.TotalActive,
		HighPriority:  row.HighPriority,
		Implemented:   row.Implemented,
		AverageRating: row.AvgRating,
	}, nil
}

func (r *RecommendationRepository) ListUrgentAdvisories(ctx context.Context, farmID uuid.UUID, limit int) ([]models.Advisory, error) {
	query := `
		SELECT ` + advisoryColumns + `
		FROM advisory a
		WHERE a.farm_id = $1 AND a.is_active = TRUE AND a.priority = 'urgent'
		ORDER BY a.created_at DESC
		LIMIT $2`

	advisories := []models.Advisory{}
	if err := r.db.SelectContext(ctx, &advisories, query, farmID, limit); err != nil {
		return nil, fmt.Errorf("failed to list urgent advisories: %w", err)
	}
	return advisories, nil
}

func (r *RecommendationRepository) ListRecentPestAlerts(ctx context.Context, farmID uuid.UUID, limit int) ([]models.PestDiseaseAlert, error) {
	query := `
		SELECT * FROM pest_disease_alert
		WHERE farm_id = $1 AND is_active = TRUE
		ORDER BY alert_date DESC
		LIMIT $2`

	alerts := []models.PestDiseaseAlert{}
	if err := r.db.SelectContext(ctx, &alerts, query, farmID, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent pest alerts: %w", err)
	}
	return alerts, nil
}

func (r *RecommendationRepository) ListUpcomingWeather(ctx context.Context, farmID uuid.UUID, now time.Time, limit int) ([]models.WeatherAdvisory, error) {
	query := `
		SELECT * FROM weather_advisory
		WHERE farm_id = $1 AND valid_until >= $2
		ORDER BY valid_from
		LIMIT $3`

	forecasts := []models.WeatherAdvisory{}
	if err := r.db.SelectContext(ctx, &forecasts, query, farmID, now, limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming weather: %w", err)
	}
	return forecasts, nil
}
