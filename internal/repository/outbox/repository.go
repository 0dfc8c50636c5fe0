package outbox

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

// Repository queues events whose synchronous publish exhausted retries.
// The republisher drains the table back into the order topic.
type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func New(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

func (or *Repository) Insert(ctx context.Context, event models.OrderEvent) error {
	const op = "repository.outbox.Insert"

	const query = `
		INSERT INTO publish_failures (event_uuid, order_id, amount, occurred_at, sent)
			VALUES ($1, $2, $3, $4, FALSE)
		ON CONFLICT (event_uuid) DO NOTHING
	`

	_, err := or.db.ExecContext(ctx, query, event.EventUUID, event.OrderID, event.Amount, event.OccurredAt)
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return nil
}
