package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"recommendation-service/internal/models"
)

var ErrPublisherClosed = errors.New("rabbitmq connection is closed")

// RecommendationPublisher writes pipeline events to RabbitMQ. Channels are not
// safe for concurrent publishing, so every publish holds mu.
type RecommendationPublisher struct {
	conn *RabbitMQConnection

	mu                sync.Mutex
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

func NewRecommendationPublisher(conn *RabbitMQConnection) (*RecommendationPublisher, error) {
	if err := conn.DeclareQueues(RecommendationQueue, PushNotiQueue); err != nil {
		return nil, err
	}
	return &RecommendationPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}, nil
}

func (p *RecommendationPublisher) PublishRunCompleted(ctx context.Context, userID string, result *models.RunResult) error {
	return p.publish(ctx, RecommendationQueue, NewRunCompletedEvent(userID, result))
}

// PublishUrgentAdvisory emits the urgent_advisory event and a push
// notification for the advisory's owner.
func (p *RecommendationPublisher) PublishUrgentAdvisory(ctx context.Context, advisory models.Advisory) error {
	if err := p.publish(ctx, RecommendationQueue, NewUrgentAdvisoryEvent(advisory)); err != nil {
		return err
	}
	return p.publish(ctx, PushNotiQueue, NewUrgentPushNotification(advisory))
}

func (p *RecommendationPublisher) publish(ctx context.Context, queue string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.conn.IsOpen() {
		p.messagesFailed++
		return ErrPublisherClosed
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish event to %s: %w", queue, err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Recommendation event published", "queue", queue, "bytes", len(body))
	return nil
}

func (p *RecommendationPublisher) HealthCheck() PublisherHealthStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PublisherHealthStatus{
		IsHealthy:         p.conn.IsOpen(),
		MessagesPublished: p.messagesPublished,
		MessagesFailed:    p.messagesFailed,
		LastPublishTime:   p.lastPublishTime,
		Queue:             RecommendationQueue,
	}
}

type PublisherHealthStatus struct {
	IsHealthy         bool      `json:"is_healthy"`
	MessagesPublished int64     `json:"messages_published"`
	MessagesFailed    int64     `json:"messages_failed"`
	LastPublishTime   time.Time `json:"last_publish_time"`
	Queue             string    `json:"queue"`
}

// NoopPublisher stands in when RabbitMQ is unavailable at startup.
type NoopPublisher struct{}

func (NoopPublisher) PublishRunCompleted(ctx context.Context, userID string, result *models.RunResult) error {
	return nil
}

func (NoopPublisher) PublishUrgentAdvisory(ctx context.Context, advisory models.Advisory) error {
	return nil
}

// HealthCheck reports the publisher as down; events are off.
func (NoopPublisher) HealthCheck() PublisherHealthStatus {
	return PublisherHealthStatus{Queue: RecommendationQueue}
}
