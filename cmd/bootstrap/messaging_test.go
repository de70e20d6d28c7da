//go:build unit

package bootstrap

import (
	"context"
	"io"
	"testing"
	"time"

	"rental-booking/internal/infra/messaging"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestClosePublisherOnStop(t *testing.T) {
	evt := shared.OutboxEvent{ID: uuid.New(), AggregateID: uuid.New(), Type: "booking.created", OccurredAt: time.Now()}

	t.Run("kafka writer is closed on shutdown", func(t *testing.T) {
		p := messaging.NewKafkaPublisher(config.KafkaConfig{
			Brokers:      []string{"localhost:9092"},
			BookingTopic: "booking-events",
			WriteTimeout: time.Second,
		})
		lc := fxtest.NewLifecycle(t)

		closePublisherOnStop(lc, p)
		lc.RequireStart().RequireStop()

		err := p.Publish(context.Background(), []shared.OutboxEvent{evt})
		assert.ErrorIs(t, err, io.ErrClosedPipe)
	})

	t.Run("log publisher needs no hook", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)

		closePublisherOnStop(lc, messaging.LogPublisher{})
		lc.RequireStart().RequireStop()

		require.NoError(t, messaging.LogPublisher{}.Publish(context.Background(), []shared.OutboxEvent{evt}))
	})
}
