package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	internalErrors "github.com/streamworks/order_pipeline/internal/lib/errors"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

// Repository is the order state store. A single-statement upsert keeps writes
// atomic: a record is either the previous value or the new one, never a mix.
type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func NewOrderRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

// Save writes the order keyed by order_id with overwrite semantics.
// Concurrent writers of the same key serialize on the row; last writer wins.
func (or *Repository) Save(ctx context.Context, order models.Order) error {
	const op = "repository.order.Save"

	const query = `
		INSERT INTO orders (order_id, amount, updated_at)
			VALUES ($1, $2, now())
		ON CONFLICT (order_id)
			DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
	`

	if _, err := or.db.ExecContext(ctx, query, order.OrderID, order.Amount); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return nil
}

func (or *Repository) Get(ctx context.Context, orderID string) (*models.Order, error) {
	const op = "repository.order.Get"

	const query = `SELECT order_id, amount FROM orders WHERE order_id = $1`

	row := or.db.QueryRowContext(ctx, query, orderID)

	var order models.Order
	if err := row.Scan(&order.OrderID, &order.Amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrOrderNotFound
		}
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: scan result: %w", op, err)
	}

	return &order, nil
}
