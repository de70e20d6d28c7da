package repository

import (
	"context"
	"time"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const appendEventSQL = `
INSERT INTO booking_events (id, aggregate_id, event_type, payload, occurred_at)
VALUES ($1, $2, $3, $4, $5)`

// SKIP LOCKED lets several relays drain the outbox without publishing a row twice.
const listPendingEventsSQL = `
SELECT id, aggregate_id, event_type, payload, occurred_at
FROM booking_events
WHERE published_at IS NULL
ORDER BY occurred_at, id
LIMIT $1
FOR UPDATE SKIP LOCKED`

const markEventsPublishedSQL = `
UPDATE booking_events SET published_at = $2 WHERE id = ANY($1)`

type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(db db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Append(ctx context.Context, evt shared.OutboxEvent) error {
	_, err := r.db.Exec(ctx, appendEventSQL,
		evt.ID,
		evt.AggregateID,
		evt.Type,
		evt.Payload,
		pgconv.TimeToPgtype(evt.OccurredAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append booking event", err)
	}
	return nil
}

func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]shared.OutboxEvent, error) {
	rows, err := r.db.Query(ctx, listPendingEventsSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending events", err)
	}
	defer rows.Close()

	var events []shared.OutboxEvent
	for rows.Next() {
		var (
			evt        shared.OutboxEvent
			occurredAt pgtype.Timestamptz
		)
		if err := rows.Scan(&evt.ID, &evt.AggregateID, &evt.Type, &evt.Payload, &occurredAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pending event", err)
		}
		evt.OccurredAt = pgconv.TimeFromPgtype(occurredAt)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate pending events", err)
	}
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, markEventsPublishedSQL, ids, pgconv.TimeToPgtype(at))
	if err != nil {
		return infra.WrapRepoErr("failed to mark events published", err)
	}
	return nil
}
