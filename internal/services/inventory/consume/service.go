package consume

import (
	"context"
	"encoding/json"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mock_consume

type inventoryApplier interface {
	Apply(ctx context.Context, order models.Order) (applied bool, err error)
}

type deadLetterPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

// Service handles order events on the inventory side. A nil return from
// OnEvent acknowledges the message; an error lets the broker redeliver it.
type Service struct {
	log logger.Logger

	applier inventoryApplier
	dlq     deadLetterPublisher

	dlqTopic string
}

func New(
	log logger.Logger,
	applier inventoryApplier,
	dlq deadLetterPublisher,
	dlqTopic string,
) *Service {
	return &Service{
		log:      log,
		applier:  applier,
		dlq:      dlq,
		dlqTopic: dlqTopic,
	}
}

// OnEvent re-validates the payload before touching inventory: the consumer
// does not trust the producer. Malformed messages go to the dead-letter topic
// and are acknowledged, since redelivery cannot fix them. The movement insert
// dedups on order_id, so a redelivered event is a no-op.
func (s *Service) OnEvent(ctx context.Context, payload []byte) error {
	const op = "services.inventory.consume.OnEvent"

	var event models.OrderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return s.deadLetter(ctx, payload, err)
	}

	order := event.Order()
	if err := order.Validate(); err != nil {
		return s.deadLetter(ctx, payload, err)
	}

	applied, err := s.applier.Apply(ctx, order)
	if err != nil {
		// Transient store error: redeliver and try again.
		return err
	}

	if !applied {
		s.log.InfoContext(ctx, op,
			logger.String("order_id", order.OrderID),
			logger.String("result", "duplicate delivery, already applied"),
		)
		return nil
	}

	s.log.InfoContext(ctx, op,
		logger.String("order_id", order.OrderID),
		logger.Int64("amount", order.Amount),
	)

	return nil
}

func (s *Service) deadLetter(ctx context.Context, payload []byte, cause error) error {
	const op = "services.inventory.consume.deadLetter"

	// A failed dead-letter publish is transient: report it so the original
	// message is redelivered rather than dropped.
	if err := s.dlq.Publish(ctx, s.dlqTopic, "", payload); err != nil {
		s.log.ErrorContext(ctx, op, logger.String("error", err.Error()))
		return err
	}

	s.log.WarnContext(ctx, op,
		logger.String("reason", cause.Error()),
		logger.Int("payload_bytes", len(payload)),
	)

	return nil
}
