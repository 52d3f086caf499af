package event

import (
	"time"

	"github.com/google/uuid"

	"recommendation-service/internal/models"
)

const (
	RecommendationQueue string = "recommendation_events"
	PushNotiQueue       string = "push_noti_events"
)

type RecommendationEventType string

const (
	EventRecommendationsGenerated RecommendationEventType = "recommendations_generated"
	EventUrgentAdvisory           RecommendationEventType = "urgent_advisory"
)

// RecommendationEvent is the envelope written to RecommendationQueue.
type RecommendationEvent struct {
	EventID   uuid.UUID               `json:"event_id"`
	Type      RecommendationEventType `json:"type"`
	FarmID    uuid.UUID               `json:"farm_id"`
	UserID    string                  `json:"user_id"`
	Timestamp time.Time               `json:"timestamp"`
	Data      map[string]any          `json:"data,omitempty"`
}

// NotificationEventPushModel matches the payload the notification service consumes.
type NotificationEventPushModel struct {
	LstUserIds []string       `json:"lstUserIds,omitempty"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Data       map[string]any `json:"data,omitempty"`
}

func NewRunCompletedEvent(userID string, result *models.RunResult) RecommendationEvent {
	return RecommendationEvent{
		EventID:   uuid.New(),
		Type:      EventRecommendationsGenerated,
		FarmID:    result.FarmID,
		UserID:    userID,
		Timestamp: result.GeneratedAt,
		Data: map[string]any{
			"total_recommendations":   result.TotalRecommendations,
			"recommendations_by_type": result.RecommendationsByType,
			"high_priority_count":     result.HighPriorityCount,
			"urgent_count":            result.UrgentCount,
		},
	}
}

func NewUrgentAdvisoryEvent(advisory models.Advisory) RecommendationEvent {
	return RecommendationEvent{
		EventID:   uuid.New(),
		Type:      EventUrgentAdvisory,
		FarmID:    advisory.FarmID,
		UserID:    advisory.UserID,
		Timestamp: advisory.CreatedAt,
		Data: map[string]any{
			"advisory_id":         advisory.ID,
			"recommendation_type": advisory.RecommendationType,
			"title":               advisory.Title,
		},
	}
}

// NewUrgentPushNotification renders an urgent advisory for the owner's devices.
func NewUrgentPushNotification(advisory models.Advisory) NotificationEventPushModel {
	return NotificationEventPushModel{
		LstUserIds: []string{advisory.UserID},
		Title:      "Urgent: " + advisory.Title,
		Body:       advisory.ActionRequired,
		Data: map[string]any{
			"advisory_id": advisory.ID.String(),
			"farm_id":     advisory.FarmID.String(),
			"type":        string(advisory.RecommendationType),
		},
	}
}
