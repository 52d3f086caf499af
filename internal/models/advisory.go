package models

import (
	"time"

	utils "recommendation-service/shared/utils"

	"github.com/google/uuid"
)

// ============================================================================
// ADVISORY
// ============================================================================

// Advisory wraps every recommendation the pipeline emits. Type-specific fields
// live in the detail record referenced by DetailID; the table is chosen by Type.
type Advisory struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	RecommendationType RecommendationType `json:"recommendation_type" db:"recommendation_type"`
	Title              string             `json:"title" db:"title"`
	Description        string             `json:"description" db:"description"`
	ActionRequired     string             `json:"action_required" db:"action_required"`
	ConfidenceLevel    ConfidenceLevel    `json:"confidence_level" db:"confidence_level"`
	Priority           Priority           `json:"priority" db:"priority"`
	ModelVersion       string             `json:"model_version" db:"model_version"`
	AlgorithmUsed      string             `json:"algorithm_used" db:"algorithm_used"`
	DataPointsUsed     int                `json:"data_points_used" db:"data_points_used"`
	AccuracyScore      float64            `json:"accuracy_score" db:"accuracy_score"`
	FarmID             uuid.UUID          `json:"farm_id" db:"farm_id"`
	UserID             string             `json:"user_id" db:"user_id"`
	CropID             *uuid.UUID         `json:"crop_id,omitempty" db:"crop_id"`
	FieldID            *uuid.UUID         `json:"field_id,omitempty" db:"field_id"`
	DetailID           uuid.UUID          `json:"detail_id" db:"detail_id"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	ValidUntil         *time.Time         `json:"valid_until,omitempty" db:"valid_until"`
	IsActive           bool               `json:"is_active" db:"is_active"`
	IsImplemented      bool               `json:"is_implemented" db:"is_implemented"`
	ImplementedAt      *time.Time         `json:"implemented_at,omitempty" db:"implemented_at"`
	FeedbackRating     *int               `json:"feedback_rating,omitempty" db:"feedback_rating"`
	FeedbackNotes      string             `json:"feedback_notes" db:"feedback_notes"`
	Metadata           utils.JSONMap      `json:"metadata,omitempty" db:"metadata"`
}

// IsExpired reports whether the validity window has passed. Expired advisories
// are never removed; callers decide what to do with them.
func (a *Advisory) IsExpired(now time.Time) bool {
	return a.ValidUntil != nil && now.After(*a.ValidUntil)
}

// Status reports a single state, with dismissal winning. The list filters are
// not exclusive: an implemented advisory that was later dismissed is listed under
// both implemented and dismissed.
func (a *Advisory) Status() AdvisoryStatus {
	switch {
	case !a.IsActive:
		return AdvisoryStatusDismissed
	case a.IsImplemented:
		return AdvisoryStatusImplemented
	default:
		return AdvisoryStatusActive
	}
}

// AdvisoryDetail is the detail record of one advisory. Exactly one member is set,
// the one matching Type.
type AdvisoryDetail struct {
	Type            RecommendationType     `json:"type"`
	CropSuitability *CropSuitabilityResult `json:"crop_suitability,omitempty"`
	Weather         *WeatherAdvisory       `json:"weather,omitempty"`
	PestDisease     *PestDiseaseAlert      `json:"pest_disease,omitempty"`
	Resource        *ResourceOptimization  `json:"resource_optimization,omitempty"`
	MarketPrice     *MarketPricePrediction `json:"market_price,omitempty"`
}

// AdvisoryView is what the detail endpoint returns.
type AdvisoryView struct {
	Advisory  Advisory                `json:"advisory"`
	Detail    *AdvisoryDetail         `json:"detail,omitempty"`
	Feedback  *RecommendationFeedback `json:"feedback,omitempty"`
	IsExpired bool                    `json:"is_expired"`
}
