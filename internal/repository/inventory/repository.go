package inventory

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

// Repository records inventory movements on the consume side. The order_id
// primary key doubles as the dedup record: a redelivered event hits the
// conflict clause and changes nothing.
type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func NewInventoryRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

// Apply inserts the movement for the order. It reports applied=false when the
// order was already processed, which the consumer treats as a clean ack.
func (ir *Repository) Apply(ctx context.Context, order models.Order) (applied bool, err error) {
	const op = "repository.inventory.Apply"

	const query = `
		INSERT INTO inventory_movements (order_id, amount, applied_at)
			VALUES ($1, $2, now())
		ON CONFLICT (order_id) DO NOTHING
	`

	result, err := ir.db.ExecContext(ctx, query, order.OrderID, order.Amount)
	if err != nil {
		ir.log.Error(op, logger.String("error", err.Error()))
		return false, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		ir.log.Error(op, logger.String("error", err.Error()))
		return false, fmt.Errorf("%s: rows affected: %w", op, err)
	}

	return rows > 0, nil
}
