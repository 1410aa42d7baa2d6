package repository

import (
	"context"
	"time"

	"BaseScan/internal/domain/models"
	domrepo "BaseScan/internal/domain/repository"
	pkgkafka "BaseScan/pkg/kafka"
)

// KafkaBasePublisher emits detection results to a Kafka topic, keyed by
// symbol so consumers see per-symbol ordering.
type KafkaBasePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaBasePublisher creates a Kafka-backed BasePublisher.
func NewKafkaBasePublisher(producer *pkgkafka.Producer, topic string) domrepo.BasePublisher {
	return &KafkaBasePublisher{producer: producer, topic: topic}
}

func (p *KafkaBasePublisher) PublishBases(ctx context.Context, symbol string, bases []models.Base) error {
	return p.producer.Publish(ctx, p.topic, []byte(symbol), map[string]interface{}{
		"symbol":      symbol,
		"detected_at": time.Now().UTC(),
		"count":       len(bases),
		"bases":       bases,
	})
}

func (p *KafkaBasePublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopBasePublisher is used when Kafka is disabled in config.
type NopBasePublisher struct{}

func (NopBasePublisher) PublishBases(context.Context, string, []models.Base) error { return nil }
func (NopBasePublisher) Close() error                                              { return nil }

var _ domrepo.BasePublisher = (*KafkaBasePublisher)(nil)
var _ domrepo.BasePublisher = NopBasePublisher{}
