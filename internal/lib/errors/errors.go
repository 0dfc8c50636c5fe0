package errors

import (
	"errors"
	"fmt"
)

// Validation failures. The exact wording is part of the API contract and is
// returned to callers verbatim.
var (
	ErrOrderIDRequired   = errors.New("OrderId is required")
	ErrAmountNotPositive = errors.New("Amount must be positive")
)

var ErrOrderNotFound = errors.New("order not found")

// PersistenceError means the state write exhausted retries. The request is
// not accepted: nothing was published, nothing was dispatched.
type PersistenceError struct {
	OrderID string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist order %s: %v", e.OrderID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PartialFailure means the order record was durably written but the event
// publish exhausted retries. The write is not rolled back; the event is
// queued for republishing instead.
type PartialFailure struct {
	OrderID string
	Err     error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("order %s persisted but publish failed: %v", e.OrderID, e.Err)
}

func (e *PartialFailure) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrOrderIDRequired) || errors.Is(err, ErrAmountNotPositive)
}
