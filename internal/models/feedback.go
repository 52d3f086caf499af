package models

import (
	"time"

	"github.com/google/uuid"
)

type RecommendationFeedback struct {
	ID                       uuid.UUID                `json:"id" db:"id"`
	AdvisoryID               uuid.UUID                `json:"advisory_id" db:"advisory_id"`
	UserID                   string                   `json:"user_id" db:"user_id"`
	UsefulnessRating         int                      `json:"usefulness_rating" db:"usefulness_rating"`
	AccuracyRating           int                      `json:"accuracy_rating" db:"accuracy_rating"`
	ImplementationDifficulty ImplementationDifficulty `json:"implementation_difficulty" db:"implementation_difficulty"`
	WasImplemented           bool                     `json:"was_implemented" db:"was_implemented"`
	OutcomeDescription       string                   `json:"outcome_description" db:"outcome_description"`
	Comments                 string                   `json:"comments" db:"comments"`
	WouldRecommend           *bool                    `json:"would_recommend,omitempty" db:"would_recommend"`
	CreatedAt                time.Time                `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time                `json:"updated_at" db:"updated_at"`
}
