package repository

import (
	"context"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/domain/repository"
	pkgkafka "SignalDash/pkg/kafka"
)

type batchPublisher interface {
	PublishBatch(ctx context.Context, topic string, messages []pkgkafka.Message) error
	Close() error
}

// KafkaEventPublisher implements EventPublisher on a Kafka topic.
// Events are keyed by session so one viewer's events stay ordered.
type KafkaEventPublisher struct {
	producer batchPublisher
	topic    string
}

// NewKafkaEventPublisher creates a publisher writing to topic.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) repository.EventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, ev models.DashboardEvent) error {
	return p.producer.PublishBatch(ctx, p.topic, []pkgkafka.Message{{
		Key:   []byte(ev.SessionID),
		Value: ev,
		Headers: map[string]string{
			"event_type": ev.Type,
			"event_id":   ev.ID,
		},
	}})
}

func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}
