package outbox_producer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/streamworks/order_pipeline/internal/config"
	"github.com/streamworks/order_pipeline/internal/domain/models"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

type eventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

// Republisher drains publish_failures back into the order topic. Rows are
// marked sent inside the transaction before producing: if the database dies
// mid-batch the transaction rolls back and nothing is lost, while a crash
// after producing but before commit only causes redelivery, which consumers
// already tolerate.
type Republisher struct {
	publisher   eventPublisher
	db          *sqlx.DB
	kafkaConfig config.KafkaConfig
	log         logger.Logger
}

func New(
	publisher eventPublisher,
	db *sqlx.DB,
	kafkaConfig config.KafkaConfig,
	log logger.Logger,
) *Republisher {
	return &Republisher{
		publisher:   publisher,
		db:          db,
		kafkaConfig: kafkaConfig,
		log:         log,
	}
}

const messageSendLimit = 100

func (rp *Republisher) ProduceMessages(ctx context.Context) (err error) {
	const op = "outbox_producer.ProduceMessages"

	tx, err := rp.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		rp.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				rp.log.Error(op, logger.String("error", rollBackErr.Error()))
				err = errors.Join(err, rollBackErr)
			}
		}
	}()

	const selectQuery = `
		SELECT event_uuid, order_id, amount, occurred_at
			FROM publish_failures
			WHERE sent = FALSE
			ORDER BY occurred_at
			LIMIT $1
	`

	rows, err := tx.QueryContext(ctx, selectQuery, messageSendLimit)
	if err != nil {
		rp.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: query publish_failures: %w", op, err)
	}
	defer rows.Close()

	var eventUUIDs []uuid.UUID
	events := make([]models.OrderEvent, 0, messageSendLimit)

	for rows.Next() {
		var event models.OrderEvent
		if err = rows.Scan(&event.EventUUID, &event.OrderID, &event.Amount, &event.OccurredAt); err != nil {
			rp.log.Error(op, logger.String("error", err.Error()))
			return fmt.Errorf("%s: scan publish_failures: %w", op, err)
		}

		events = append(events, event)
		eventUUIDs = append(eventUUIDs, event.EventUUID)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%s: iterate publish_failures: %w", op, err)
	}
	// lib/pq cannot run another statement on the connection while rows are open.
	if err = rows.Close(); err != nil {
		return fmt.Errorf("%s: close rows: %w", op, err)
	}

	if len(events) == 0 {
		return tx.Commit()
	}

	const markSentQuery = `UPDATE publish_failures SET sent = TRUE WHERE event_uuid = ANY($1)`

	if _, err = tx.ExecContext(ctx, markSentQuery, pq.Array(eventUUIDs)); err != nil {
		rp.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: mark sent: %w", op, err)
	}

	for _, event := range events {
		var payload []byte
		if payload, err = json.Marshal(event); err != nil {
			rp.log.Error(op, logger.String("error", err.Error()))
			return fmt.Errorf("%s: marshal event: %w", op, err)
		}

		if err = rp.publisher.Publish(ctx, rp.kafkaConfig.OrderEventTopic, event.OrderID, payload); err != nil {
			rp.log.Error(op, logger.String("error", err.Error()))
			return fmt.Errorf("%s: publish event: %w", op, err)
		}
	}

	rp.log.Info(op, logger.Int("republished", len(events)))

	return tx.Commit()
}
