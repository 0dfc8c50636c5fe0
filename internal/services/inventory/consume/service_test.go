package consume_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	"github.com/streamworks/order_pipeline/internal/services/inventory/consume"
	mockConsume "github.com/streamworks/order_pipeline/internal/services/inventory/consume/mocks"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

const dlqTopic = "orders_dlq"

func newService(t *testing.T) (*consume.Service, *mockConsume.MockinventoryApplier, *mockConsume.MockdeadLetterPublisher) {
	t.Helper()

	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)

	applier := mockConsume.NewMockinventoryApplier(ctl)
	dlq := mockConsume.NewMockdeadLetterPublisher(ctl)

	svc := consume.New(logger.NewDiscardLogger(), applier, dlq, dlqTopic)

	return svc, applier, dlq
}

func eventPayload(t *testing.T, orderID string, amount int64) []byte {
	t.Helper()

	payload, err := json.Marshal(models.OrderEvent{
		EventUUID:  uuid.New(),
		OrderID:    orderID,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	return payload
}

func TestOnEventAppliesOrder(t *testing.T) {
	svc, applier, _ := newService(t)

	ctx := context.Background()
	order := models.Order{OrderID: "A1", Amount: 100}

	applier.EXPECT().Apply(ctx, order).Return(true, nil)

	require.NoError(t, svc.OnEvent(ctx, eventPayload(t, "A1", 100)))
}

func TestOnEventRedeliveryAppliesOnce(t *testing.T) {
	svc, applier, _ := newService(t)

	ctx := context.Background()
	order := models.Order{OrderID: "A1", Amount: 100}
	payload := eventPayload(t, "A1", 100)

	gomock.InOrder(
		applier.EXPECT().Apply(ctx, order).Return(true, nil),
		applier.EXPECT().Apply(ctx, order).Return(false, nil),
	)

	// The broker redelivers the same event; both deliveries ack, the
	// movement lands once.
	require.NoError(t, svc.OnEvent(ctx, payload))
	require.NoError(t, svc.OnEvent(ctx, payload))
}

func TestOnEventMalformedPayloadGoesToDeadLetter(t *testing.T) {
	svc, _, dlq := newService(t)

	ctx := context.Background()
	payload := []byte("{not json")

	dlq.EXPECT().Publish(ctx, dlqTopic, "", payload).Return(nil)

	require.NoError(t, svc.OnEvent(ctx, payload))
}

func TestOnEventInvalidOrderGoesToDeadLetter(t *testing.T) {
	tCases := []struct {
		name    string
		orderID string
		amount  int64
	}{
		{name: "empty_order_id", orderID: "", amount: 100},
		{name: "non_positive_amount", orderID: "A2", amount: 0},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			svc, _, dlq := newService(t)

			ctx := context.Background()
			payload := eventPayload(t, tCase.orderID, tCase.amount)

			dlq.EXPECT().Publish(ctx, dlqTopic, "", payload).Return(nil)

			require.NoError(t, svc.OnEvent(ctx, payload))
		})
	}
}

func TestOnEventTransientApplyErrorNacks(t *testing.T) {
	svc, applier, _ := newService(t)

	ctx := context.Background()
	order := models.Order{OrderID: "A1", Amount: 100}

	transient := errors.New("connection reset")
	applier.EXPECT().Apply(ctx, order).Return(false, transient)

	require.ErrorIs(t, svc.OnEvent(ctx, eventPayload(t, "A1", 100)), transient)
}

func TestOnEventDeadLetterPublishErrorNacks(t *testing.T) {
	svc, _, dlq := newService(t)

	ctx := context.Background()
	payload := []byte("{not json")

	transient := errors.New("broker unavailable")
	dlq.EXPECT().Publish(ctx, dlqTopic, "", payload).Return(transient)

	require.ErrorIs(t, svc.OnEvent(ctx, payload), transient)
}
