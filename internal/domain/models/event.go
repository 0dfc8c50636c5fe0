package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderEvent is the message published to the order topic. EventUUID is minted
// per publish, so a redelivered event keeps its identity while a re-submitted
// order gets a new one.
type OrderEvent struct {
	EventUUID  uuid.UUID `json:"event_uuid"`
	OrderID    string    `json:"orderId"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewOrderEvent(order Order) OrderEvent {
	return OrderEvent{
		EventUUID:  uuid.New(),
		OrderID:    order.OrderID,
		Amount:     order.Amount,
		OccurredAt: time.Now().UTC(),
	}
}

func (e OrderEvent) Order() Order {
	return Order{
		OrderID: e.OrderID,
		Amount:  e.Amount,
	}
}
