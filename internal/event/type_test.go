package event

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommendation-service/internal/models"
)

func TestNewRunCompletedEvent_CarriesCounts(t *testing.T) {
	farmID := uuid.New()
	result := models.NewRunResult(farmID, time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC))
	result.Add(models.Advisory{RecommendationType: models.RecommendationPestDisease, Priority: models.PriorityUrgent})
	result.Add(models.Advisory{RecommendationType: models.RecommendationCropSelection, Priority: models.PriorityHigh})

	evt := NewRunCompletedEvent("user-1", result)

	assert.Equal(t, EventRecommendationsGenerated, evt.Type)
	assert.Equal(t, farmID, evt.FarmID)
	assert.Equal(t, "user-1", evt.UserID)
	assert.Equal(t, 2, evt.Data["total_recommendations"])
	assert.Equal(t, 1, evt.Data["urgent_count"])
	assert.NotEqual(t, uuid.Nil, evt.EventID)
}

func TestNewUrgentPushNotification_TargetsOwner(t *testing.T) {
	advisory := models.Advisory{
		ID:                 uuid.New(),
		FarmID:             uuid.New(),
		UserID:             "owner-7",
		RecommendationType: models.RecommendationPestDisease,
		Title:              "Rice Blast Risk Alert",
		ActionRequired:     "Apply fungicide",
	}

	push := NewUrgentPushNotification(advisory)

	assert.Equal(t, []string{"owner-7"}, push.LstUserIds)
	assert.Equal(t, "Urgent: Rice Blast Risk Alert", push.Title)

	body, err := json.Marshal(push)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"lstUserIds":["owner-7"]`)
	assert.Contains(t, string(body), advisory.ID.String())
}

func TestRabbitMQConnection_IsOpenOnNil(t *testing.T) {
	var conn *RabbitMQConnection
	assert.False(t, conn.IsOpen())
	assert.False(t, (&RabbitMQConnection{}).IsOpen())
}

func TestRecommendationPublisher_HealthCountsFailedPublishes(t *testing.T) {
	p := &RecommendationPublisher{conn: &RabbitMQConnection{}}

	err := p.PublishUrgentAdvisory(context.Background(), models.Advisory{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrPublisherClosed)

	health := p.HealthCheck()
	assert.False(t, health.IsHealthy)
	assert.Equal(t, int64(1), health.MessagesFailed)
	assert.Zero(t, health.MessagesPublished)
	assert.Equal(t, RecommendationQueue, health.Queue)
}
