package models

import (
	internalErrors "github.com/streamworks/order_pipeline/internal/lib/errors"
)

// Order is the business payload: a globally unique id and a positive amount.
// Immutable once created, compared by value.
type Order struct {
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
}

// Validate enforces the two ingest rules. The consumer applies the same rules
// to incoming events, so they live on the model rather than in the transport
// layer.
func (o Order) Validate() error {
	if o.OrderID == "" {
		return internalErrors.ErrOrderIDRequired
	}

	if o.Amount <= 0 {
		return internalErrors.ErrAmountNotPositive
	}

	return nil
}
