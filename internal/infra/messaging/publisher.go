package messaging

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/jobs"
	"rental-booking/internal/usecase/shared"

	kafkago "github.com/segmentio/kafka-go"
)

const headerEventType = "event-type"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher writes booking events keyed by booking ID, so one booking's
// events stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.BookingTopic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events []shared.OutboxEvent) error {
	msgs := make([]kafkago.Message, len(events))
	for i, evt := range events {
		msgs[i] = toMessage(evt)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return errs.Wrap(err, "failed to write booking events to kafka")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(evt shared.OutboxEvent) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(evt.AggregateID.String()),
		Value: evt.Payload,
		Time:  evt.OccurredAt,
		Headers: []kafkago.Header{
			{Key: headerEventType, Value: []byte(evt.Type)},
			{Key: "event-id", Value: []byte(evt.ID.String())},
		},
	}
}

// LogPublisher stands in for Kafka when it is disabled.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, events []shared.OutboxEvent) error {
	for _, evt := range events {
		slog.InfoContext(ctx, "booking event",
			slog.String("event_id", evt.ID.String()),
			slog.String("type", evt.Type),
			slog.String("booking_id", evt.AggregateID.String()),
			slog.String("occurred_at", evt.OccurredAt.Format(time.RFC3339)))
	}
	return nil
}

func NewEventPublisher(cfg config.KafkaConfig) jobs.EventPublisher {
	if !cfg.Enabled {
		return LogPublisher{}
	}
	return NewKafkaPublisher(cfg)
}
