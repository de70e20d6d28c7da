package messaging

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/events"
	"rental-booking/internal/usecase/jobs"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	maxHandleAttempts = 3
	handleRetryDelay  = 500 * time.Millisecond
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// ReviewEventConsumer completes a stay once its guest has reviewed it.
type ReviewEventConsumer struct {
	reader    messageReader
	completer jobs.BookingCompleter
}

func NewReviewEventConsumer(cfg config.KafkaConfig, completer jobs.BookingCompleter) *ReviewEventConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.ReviewTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &ReviewEventConsumer{reader: reader, completer: completer}
}

// Start blocks until ctx is cancelled.
func (c *ReviewEventConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errs.Wrap(err, "failed to fetch review event")
		}

		c.process(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.ErrorContext(ctx, "failed to commit review event offset",
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()))
		}
	}
}

func (c *ReviewEventConsumer) Close() error {
	return c.reader.Close()
}

// process retries transient failures a few times before giving the message up.
func (c *ReviewEventConsumer) process(ctx context.Context, msg kafkago.Message) {
	for attempt := 1; attempt <= maxHandleAttempts; attempt++ {
		err := c.handleMessage(ctx, msg)
		if err == nil {
			return
		}
		slog.WarnContext(ctx, "failed to handle review event",
			slog.Int("attempt", attempt),
			slog.Int64("offset", msg.Offset),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return
		case <-time.After(handleRetryDelay * time.Duration(attempt)):
		}
	}
	slog.ErrorContext(ctx, "dropping review event after retries", slog.Int64("offset", msg.Offset))
}

func (c *ReviewEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	if t := headerValue(msg, headerEventType); t != "" && t != events.TypeReviewCreated {
		slog.DebugContext(ctx, "ignoring unhandled review event type", slog.String("type", t))
		return nil
	}

	evt, err := events.DecodeReviewCreated(msg.Value)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse review event",
			slog.String("error", err.Error()),
			slog.String("raw", string(msg.Value)))
		return nil // Don't retry malformed messages
	}

	_, err = c.completer.CompleteBooking(ctx, evt.BookingID)
	if err != nil {
		if _, ok := errs.AsDomainError(err); ok {
			slog.InfoContext(ctx, "review does not complete booking",
				slog.String("booking_id", evt.BookingID.String()),
				slog.String("reason", err.Error()))
			return nil
		}
		return err
	}

	slog.InfoContext(ctx, "booking completed after review",
		slog.String("booking_id", evt.BookingID.String()),
		slog.String("review_id", evt.ReviewID.String()))
	return nil
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
