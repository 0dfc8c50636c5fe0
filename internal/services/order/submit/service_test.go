package submit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	internalErrors "github.com/streamworks/order_pipeline/internal/lib/errors"
	"github.com/streamworks/order_pipeline/internal/lib/retry"
	"github.com/streamworks/order_pipeline/internal/services/order/submit"
	mockSubmit "github.com/streamworks/order_pipeline/internal/services/order/submit/mocks"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

const orderTopic = "orders"

type deps struct {
	store      *mockSubmit.MockstateStore
	publisher  *mockSubmit.MockeventPublisher
	dispatcher *mockSubmit.MockreceiptDispatcher
	failed     *mockSubmit.MockfailedPublishRecorder
	cache      *mockSubmit.MockorderCache
}

func newService(t *testing.T, policy retry.Policy) (*submit.Service, deps) {
	t.Helper()

	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)

	d := deps{
		store:      mockSubmit.NewMockstateStore(ctl),
		publisher:  mockSubmit.NewMockeventPublisher(ctl),
		dispatcher: mockSubmit.NewMockreceiptDispatcher(ctl),
		failed:     mockSubmit.NewMockfailedPublishRecorder(ctl),
		cache:      mockSubmit.NewMockorderCache(ctl),
	}

	svc := submit.New(
		logger.NewDiscardLogger(),
		d.store,
		d.publisher,
		d.dispatcher,
		d.failed,
		d.cache,
		orderTopic,
		policy,
	)

	return svc, d
}

func singleAttempt() retry.Policy {
	return retry.Policy{Attempts: 1, Backoff: time.Millisecond}
}

func TestSubmitAccepted(t *testing.T) {
	svc, d := newService(t, singleAttempt())

	ctx := context.Background()
	order := models.Order{OrderID: "A1", Amount: 100}

	gomock.InOrder(
		d.store.EXPECT().Save(ctx, order).Return(nil),
		d.publisher.EXPECT().
			Publish(ctx, orderTopic, order.OrderID, gomock.Any()).
			Return(nil),
		d.dispatcher.EXPECT().Invoke(ctx, order.OrderID).Return(nil),
	)
	d.cache.EXPECT().Add(order.OrderID, &order).Return(false)

	require.NoError(t, svc.Submit(ctx, order))
}

func TestSubmitValidationRejectsWithoutSideEffects(t *testing.T) {
	tCases := []struct {
		name      string
		input     models.Order
		expErr    error
		expReason string
	}{
		{
			name:      "empty_order_id",
			input:     models.Order{OrderID: "", Amount: 50},
			expErr:    internalErrors.ErrOrderIDRequired,
			expReason: "OrderId is required",
		},
		{
			name:      "zero_amount",
			input:     models.Order{OrderID: "A2", Amount: 0},
			expErr:    internalErrors.ErrAmountNotPositive,
			expReason: "Amount must be positive",
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			svc, _ := newService(t, singleAttempt())

			err := svc.Submit(context.Background(), tCase.input)

			// No expectations were registered on any mock: a single
			// store write, publish, or dispatch fails the test.
			require.ErrorIs(t, err, tCase.expErr)
			require.EqualError(t, err, tCase.expReason)
		})
	}
}

func TestSubmitPersistenceFailureSkipsPublish(t *testing.T) {
	svc, d := newService(t, singleAttempt())

	ctx := context.Background()
	order := models.Order{OrderID: "A1", Amount: 100}

	d.store.EXPECT().Save(ctx, order).Return(errors.New("connection refused"))

	err := svc.Submit(ctx, order)

	var persistenceErr *internalErrors.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	require.Equal(t, "A1", persistenceErr.OrderID)
}

func TestSubmitRetriesTransientSave(t *testing.T) {
	svc, d := newService(t, retry.Policy{Attempts: 2, Backoff: time.Millisecond})

	ctx := context.Background()
	order := models.Order{OrderID: "A1", Amount: 100}

	gomock.InOrder(
		d.store.EXPECT().Save(ctx, order).Return(errors.New("timeout")),
		d.store.EXPECT().Save(ctx, order).Return(nil),
	)
	d.cache.EXPECT().Add(order.OrderID, &order).Return(false)
	d.publisher.EXPECT().
		Publish(ctx, orderTopic, order.OrderID, gomock.Any()).
		Return(nil)
	d.dispatcher.EXPECT().Invoke(ctx, order.OrderID).Return(nil)

	require.NoError(t, svc.Submit(ctx, order))
}

func TestSubmitPublishFailureIsPartial(t *testing.T) {
	svc, d := newService(t, singleAttempt())

	ctx := context.Background()
	order := models.Order{OrderID: "A1", Amount: 100}

	gomock.InOrder(
		d.store.EXPECT().Save(ctx, order).Return(nil),
		d.publisher.EXPECT().
			Publish(ctx, orderTopic, order.OrderID, gomock.Any()).
			Return(errors.New("broker unavailable")),
		d.failed.EXPECT().
			Insert(ctx, gomock.AssignableToTypeOf(models.OrderEvent{})).
			Return(nil),
	)
	d.cache.EXPECT().Add(order.OrderID, &order).Return(false)

	err := svc.Submit(ctx, order)

	var partial *internalErrors.PartialFailure
	require.ErrorAs(t, err, &partial)
	require.Equal(t, "A1", partial.OrderID)
}

func TestSubmitReceiptFailureIsNonFatal(t *testing.T) {
	svc, d := newService(t, singleAttempt())

	ctx := context.Background()
	order := models.Order{OrderID: "A1", Amount: 100}

	gomock.InOrder(
		d.store.EXPECT().Save(ctx, order).Return(nil),
		d.publisher.EXPECT().
			Publish(ctx, orderTopic, order.OrderID, gomock.Any()).
			Return(nil),
		d.dispatcher.EXPECT().Invoke(ctx, order.OrderID).Return(errors.New("disk full")),
	)
	d.cache.EXPECT().Add(order.OrderID, &order).Return(false)

	require.NoError(t, svc.Submit(ctx, order))
}
