package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// REQUESTS
// ============================================================================

type SubmitFeedbackRequest struct {
	UsefulnessRating         int                      `json:"usefulness_rating" validate:"required,min=1,max=5"`
	AccuracyRating           int                      `json:"accuracy_rating" validate:"required,min=1,max=5"`
	ImplementationDifficulty ImplementationDifficulty `json:"implementation_difficulty" validate:"required,oneof=easy moderate difficult"`
	WasImplemented           bool                     `json:"was_implemented"`
	OutcomeDescription       string                   `json:"outcome_description" validate:"max=2000"`
	Comments                 string                   `json:"comments" validate:"max=2000"`
	WouldRecommend           *bool                    `json:"would_recommend,omitempty"`
}

type AdvisoryActionRequest struct {
	Action AdvisoryAction `json:"action" validate:"required"`
}

type AdvisoryFilter struct {
	UserID   string
	FarmID   *uuid.UUID
	Type     RecommendationType
	Priority Priority
	Status   AdvisoryStatus
	Page     int
	Limit    int
}

func (f AdvisoryFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type PestAlertFilter struct {
	OwnerID  string
	FarmID   *uuid.UUID
	Severity Severity
	Type     AlertKind
}

type MarketPredictionFilter struct {
	OwnerID string
	CropID  *uuid.UUID
}

type ResourceOptimizationFilter struct {
	OwnerID      string
	FarmID       *uuid.UUID
	ResourceType ResourceType
}

// ============================================================================
// RESPONSES
// ============================================================================

// RunResult summarises one pipeline run for a farm.
type RunResult struct {
	FarmID                uuid.UUID                  `json:"farm_id"`
	GeneratedAt           time.Time                  `json:"generated_at"`
	TotalRecommendations  int                        `json:"total_recommendations"`
	RecommendationsByType map[RecommendationType]int `json:"recommendations_by_type"`
	HighPriorityCount     int                        `json:"high_priority_count"`
	UrgentCount           int                        `json:"urgent_count"`
	Recommendations       []Advisory                 `json:"recommendations"`
}

func NewRunResult(farmID uuid.UUID, generatedAt time.Time) *RunResult {
	byType := make(map[RecommendationType]int, len(AllRecommendationTypes))
	for _, t := range AllRecommendationTypes {
		byType[t] = 0
	}
	return &RunResult{
		FarmID:                farmID,
		GeneratedAt:           generatedAt,
		RecommendationsByType: byType,
		Recommendations:       []Advisory{},
	}
}

// Add records an advisory in the result and its counters.
func (r *RunResult) Add(a Advisory) {
	r.Recommendations = append(r.Recommendations, a)
	r.TotalRecommendations++
	r.RecommendationsByType[a.RecommendationType]++
	switch a.Priority {
	case PriorityHigh:
		r.HighPriorityCount++
	case PriorityUrgent:
		r.UrgentCount++
	}
}

type DashboardStats struct {
	FarmID                 uuid.UUID          `json:"farm_id"`
	TotalActive            int                `json:"total_active"`
	HighPriority           int                `json:"high_priority"`
	Implemented            int                `json:"implemented"`
	AverageRating          float64            `json:"avg_rating"`
	UrgentRecommendations  []Advisory         `json:"urgent_recommendations"`
	RecentAlerts           []PestDiseaseAlert `json:"recent_alerts"`
	WeatherRecommendations []WeatherAdvisory  `json:"weather_recommendations"`
	ComputedAt             time.Time          `json:"computed_at"`
}

type PestAlertStats struct {
	TotalActive    int `json:"total_active"`
	CriticalAlerts int `json:"critical_alerts"`
	// RecentAlerts counts alerts raised in the last seven days.
	RecentAlerts int `json:"recent_alerts"`
}

type PestAlertList struct {
	Alerts []PestDiseaseAlert `json:"alerts"`
	Stats  PestAlertStats     `json:"stats"`
}

type ResourceOptimizationList struct {
	Optimizations []ResourceOptimization `json:"optimizations"`
	TotalSavings  float64                `json:"total_savings"`
}

type ActionResult struct {
	Advisory Advisory `json:"advisory"`
	Message  string   `json:"message"`
}
