package repository

import (
	"context"
	"fmt"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	pkgkafka "MacroPulse/pkg/kafka"
)

// eventKey keys all update events so downstream consumers see them in order.
const eventKey = "macro"

// KafkaEventPublisher implements EventPublisher for Kafka.
// It also satisfies logger.Publisher so aggregated error logs can share the producer.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaEventPublisher creates a Kafka event publisher.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) PublishUpdate(ctx context.Context, ev *models.UpdateEvent) error {
	if ev == nil || ev.Reading == nil {
		return fmt.Errorf("update event is nil")
	}
	if err := p.producer.Publish(ctx, p.topic, []byte(eventKey), ev); err != nil {
		return fmt.Errorf("publish update event: %w", err)
	}
	return nil
}

// PublishMessage sends an arbitrary payload to a topic (logger.Publisher).
func (p *KafkaEventPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, []byte(eventKey), payload)
}

func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.EventPublisher = (*KafkaEventPublisher)(nil)
