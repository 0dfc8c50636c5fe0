package submit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	internalErrors "github.com/streamworks/order_pipeline/internal/lib/errors"
	"github.com/streamworks/order_pipeline/internal/lib/retry"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mock_submit

type stateStore interface {
	Save(ctx context.Context, order models.Order) error
}

type eventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

type receiptDispatcher interface {
	Invoke(ctx context.Context, orderID string) error
}

type failedPublishRecorder interface {
	Insert(ctx context.Context, event models.OrderEvent) error
}

type orderCache interface {
	Add(key string, value *models.Order) (evicted bool)
}

// Service is the ingest pipeline: validate, persist, publish, dispatch.
// The state write strictly precedes the publish, so a consumer never sees an
// event without a durable record behind it.
type Service struct {
	log logger.Logger

	store      stateStore
	publisher  eventPublisher
	dispatcher receiptDispatcher
	failed     failedPublishRecorder
	cache      orderCache

	topic  string
	policy retry.Policy
}

func New(
	log logger.Logger,
	store stateStore,
	publisher eventPublisher,
	dispatcher receiptDispatcher,
	failed failedPublishRecorder,
	cache orderCache,
	topic string,
	policy retry.Policy,
) *Service {
	return &Service{
		log:        log,
		store:      store,
		publisher:  publisher,
		dispatcher: dispatcher,
		failed:     failed,
		cache:      cache,
		topic:      topic,
		policy:     policy,
	}
}

// Submit accepts an order. Returns a validation error untouched, a
// *PersistenceError when the state write exhausted retries, and a
// *PartialFailure when the record is written but the publish failed after
// retries. Receipt dispatch is best-effort and never affects the outcome.
func (s *Service) Submit(ctx context.Context, order models.Order) error {
	const op = "services.order.submit.Submit"

	if err := order.Validate(); err != nil {
		return err
	}

	if err := s.policy.Do(ctx, func(ctx context.Context) error {
		return s.store.Save(ctx, order)
	}); err != nil {
		s.log.ErrorContext(ctx, op,
			logger.String("order_id", order.OrderID),
			logger.String("error", err.Error()),
		)
		return &internalErrors.PersistenceError{OrderID: order.OrderID, Err: err}
	}

	s.cache.Add(order.OrderID, &order)

	event := models.NewOrderEvent(order)

	if err := s.publish(ctx, event); err != nil {
		return err
	}

	if err := s.dispatcher.Invoke(ctx, order.OrderID); err != nil {
		// Receipts are regenerable; the order stands.
		s.log.WarnContext(ctx, op,
			logger.String("order_id", order.OrderID),
			logger.String("receipt error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, op, logger.String("order_id", order.OrderID))

	return nil
}

func (s *Service) publish(ctx context.Context, event models.OrderEvent) error {
	const op = "services.order.submit.publish"

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: marshal event: %w", op, err)
	}

	err = s.policy.Do(ctx, func(ctx context.Context) error {
		return s.publisher.Publish(ctx, s.topic, event.OrderID, payload)
	})
	if err == nil {
		return nil
	}

	s.log.ErrorContext(ctx, op,
		logger.String("order_id", event.OrderID),
		logger.String("error", err.Error()),
	)

	// The record is already durable. Queue the event so the republisher can
	// deliver it later instead of desynchronizing inventory for good.
	if insertErr := s.failed.Insert(ctx, event); insertErr != nil {
		s.log.ErrorContext(ctx, op,
			logger.String("order_id", event.OrderID),
			logger.String("queue error", insertErr.Error()),
		)
	}

	return &internalErrors.PartialFailure{OrderID: event.OrderID, Err: err}
}
