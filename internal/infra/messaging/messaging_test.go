//go:build unit

package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/events"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"
	jobsmock "rental-booking/tests/mock/jobs"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeWriter struct {
	written []kafkago.Message
	err     error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	queue     []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

// FetchMessage drains the queue, then behaves like a reader whose context was cancelled.
func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.queue) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func reviewMessage(t *testing.T, bookingID uuid.UUID) kafkago.Message {
	t.Helper()
	payload := `{"review_id":"` + uuid.NewString() + `","booking_id":"` + bookingID.String() +
		`","author_id":"` + uuid.NewString() + `","created_at":"2030-06-20T10:00:00Z"}`
	return kafkago.Message{
		Value:   []byte(payload),
		Headers: []kafkago.Header{{Key: headerEventType, Value: []byte(events.TypeReviewCreated)}},
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	evt := shared.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: uuid.New(),
		Type:        events.TypeBookingCreated,
		Payload:     []byte(`{"booking_id":"x"}`),
		OccurredAt:  time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC),
	}

	t.Run("keys by booking and tags the event type", func(t *testing.T) {
		w := &fakeWriter{}
		p := &KafkaPublisher{writer: w}

		require.NoError(t, p.Publish(context.Background(), []shared.OutboxEvent{evt}))
		require.Len(t, w.written, 1)

		msg := w.written[0]
		assert.Equal(t, evt.AggregateID.String(), string(msg.Key))
		assert.Equal(t, evt.Payload, msg.Value)
		assert.Equal(t, evt.OccurredAt, msg.Time)
		assert.Equal(t, events.TypeBookingCreated, headerValue(msg, headerEventType))
		assert.Equal(t, evt.ID.String(), headerValue(msg, "event-id"))
	})

	t.Run("wraps broker errors", func(t *testing.T) {
		p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("leader not available")}}
		err := p.Publish(context.Background(), []shared.OutboxEvent{evt})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "leader not available")
	})
}

func TestNewEventPublisher(t *testing.T) {
	assert.IsType(t, LogPublisher{}, NewEventPublisher(config.KafkaConfig{Enabled: false}))
	assert.IsType(t, &KafkaPublisher{}, NewEventPublisher(config.KafkaConfig{Enabled: true, Brokers: []string{"localhost:9092"}}))
	assert.NoError(t, LogPublisher{}.Publish(context.Background(), []shared.OutboxEvent{{ID: uuid.New()}}))
}

func TestReviewEventConsumer_HandleMessage(t *testing.T) {
	bookingID := uuid.New()

	testCases := []struct {
		name      string
		msg       func(t *testing.T) kafkago.Message
		setupMock func(m *jobsmock.MockBookingCompleter)
		expectErr bool
	}{
		{
			name: "completes the reviewed booking",
			msg:  func(t *testing.T) kafkago.Message { return reviewMessage(t, bookingID) },
			setupMock: func(m *jobsmock.MockBookingCompleter) {
				m.EXPECT().CompleteBooking(gomock.Any(), bookingID).Return(&queries.BookingView{ID: bookingID}, nil)
			},
		},
		{
			name: "message without a type header is still handled",
			msg: func(t *testing.T) kafkago.Message {
				msg := reviewMessage(t, bookingID)
				msg.Headers = nil
				return msg
			},
			setupMock: func(m *jobsmock.MockBookingCompleter) {
				m.EXPECT().CompleteBooking(gomock.Any(), bookingID).Return(&queries.BookingView{ID: bookingID}, nil)
			},
		},
		{
			name: "other event types are ignored",
			msg: func(t *testing.T) kafkago.Message {
				msg := reviewMessage(t, bookingID)
				msg.Headers = []kafkago.Header{{Key: headerEventType, Value: []byte("review.deleted")}}
				return msg
			},
		},
		{
			name: "malformed payload is dropped",
			msg: func(*testing.T) kafkago.Message {
				return kafkago.Message{Value: []byte(`{"booking_id":`)}
			},
		},
		{
			name: "payload without a booking is dropped",
			msg: func(*testing.T) kafkago.Message {
				return kafkago.Message{Value: []byte(`{"review_id":"` + uuid.NewString() + `"}`)}
			},
		},
		{
			name: "ineligible booking is skipped",
			msg:  func(t *testing.T) kafkago.Message { return reviewMessage(t, bookingID) },
			setupMock: func(m *jobsmock.MockBookingCompleter) {
				m.EXPECT().CompleteBooking(gomock.Any(), bookingID).Return(nil, booking.ErrNotYetCheckedOut)
			},
		},
		{
			name: "storage failure is returned for retry",
			msg:  func(t *testing.T) kafkago.Message { return reviewMessage(t, bookingID) },
			setupMock: func(m *jobsmock.MockBookingCompleter) {
				m.EXPECT().CompleteBooking(gomock.Any(), bookingID).Return(nil, errors.New("too many connections"))
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			completer := jobsmock.NewMockBookingCompleter(ctrl)
			if tc.setupMock != nil {
				tc.setupMock(completer)
			}
			c := &ReviewEventConsumer{completer: completer}

			err := c.handleMessage(context.Background(), tc.msg(t))
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReviewEventConsumer_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := jobsmock.NewMockBookingCompleter(ctrl)

	first, second := uuid.New(), uuid.New()
	completer.EXPECT().CompleteBooking(gomock.Any(), first).Return(&queries.BookingView{ID: first}, nil)
	completer.EXPECT().CompleteBooking(gomock.Any(), second).Return(nil, booking.ErrInvalidTransition)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &fakeReader{
		queue:  []kafkago.Message{reviewMessage(t, first), reviewMessage(t, second)},
		cancel: cancel,
	}
	c := &ReviewEventConsumer{reader: reader, completer: completer}

	require.NoError(t, c.Start(ctx), "cancellation is a clean stop")
	assert.Len(t, reader.committed, 2, "handled and skipped messages are both committed")
	assert.NoError(t, c.Close())
}
