package get

import (
	"context"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

type orderGetter interface {
	Get(ctx context.Context, orderID string) (*models.Order, error)
}

type orderCache interface {
	Get(key string) (value *models.Order, ok bool)
	Add(key string, value *models.Order) (evicted bool)
}

type Service struct {
	log   logger.Logger
	cache orderCache

	orderGetter orderGetter
}

func New(
	log logger.Logger,
	cache orderCache,
	orderGetter orderGetter,
) *Service {
	return &Service{
		log:         log,
		cache:       cache,
		orderGetter: orderGetter,
	}
}

// OrderByID serves from the cache when it can; absence in the store surfaces
// as ErrOrderNotFound from the repository, untouched.
func (s *Service) OrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	const op = "services.order.get.OrderByID"

	if order, ok := s.cache.Get(orderID); ok && order != nil {
		s.log.DebugContext(ctx, op, logger.String("order_id", orderID))
		return order, nil
	}

	order, err := s.orderGetter.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.cache.Add(orderID, order)

	return order, nil
}
