package get

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	internalErrors "github.com/streamworks/order_pipeline/internal/lib/errors"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

type orderGetter interface {
	OrderByID(ctx context.Context, orderID string) (*models.Order, error)
}

type Handler struct {
	log logger.Logger

	orderGetter orderGetter
}

func NewHandler(log logger.Logger, orderGetter orderGetter) *Handler {
	return &Handler{
		log:         log,
		orderGetter: orderGetter,
	}
}

func (h *Handler) OrderByID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.get.OrderByID"

	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		http.Error(w, "order ID is required", http.StatusBadRequest)
		return
	}

	order, err := h.orderGetter.OrderByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		h.log.Error(op, logger.String("failed to get order", err.Error()))
		http.Error(w, "failed to get order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err = json.NewEncoder(w).Encode(order); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
	}
}
