package repository

import (
	"context"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	drepo "github.com/Shivam007kumar/customer-churn/internal/domain/repository"
)

// MessagePublisher is the subset of pkg/kafka.Producer used here.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// KafkaOutcomeSink publishes outcome events as JSON, keyed by event id.
type KafkaOutcomeSink struct {
	producer MessagePublisher
	topic    string
}

// NewKafkaOutcomeSink creates a Kafka outcome sink.
func NewKafkaOutcomeSink(producer MessagePublisher, topic string) drepo.OutcomeSink {
	return &KafkaOutcomeSink{producer: producer, topic: topic}
}

func (s *KafkaOutcomeSink) Record(ctx context.Context, o models.RelayOutcome) error {
	return s.producer.Publish(ctx, s.topic, []byte(o.ID), o)
}

func (s *KafkaOutcomeSink) Name() string { return "kafka" }

func (s *KafkaOutcomeSink) Close() error {
	return nil // producer is shared with the log collector and closed by its owner
}

// KafkaLogPublisher ships aggregated error logs for the log collector.
type KafkaLogPublisher struct {
	producer MessagePublisher
}

func NewKafkaLogPublisher(producer MessagePublisher) *KafkaLogPublisher {
	return &KafkaLogPublisher{producer: producer}
}

// PublishMessage implements logger.Publisher.
func (p *KafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}
