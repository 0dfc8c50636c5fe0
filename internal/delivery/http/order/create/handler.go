package create

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	internalErrors "github.com/streamworks/order_pipeline/internal/lib/errors"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

type orderSubmitter interface {
	Submit(ctx context.Context, order models.Order) error
}

type Handler struct {
	log logger.Logger

	orderSubmitter orderSubmitter
}

func NewHandler(log logger.Logger, orderSubmitter orderSubmitter) *Handler {
	return &Handler{
		log:            log,
		orderSubmitter: orderSubmitter,
	}
}

// Create accepts an order. 202 on accept, 400 with the reason on validation,
// 500 when the state write failed. A partial failure (record written, publish
// queued for republishing) still answers 202: the synchronous caller's
// contract covers the state write only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.create.Create"

	var request SubmitOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.Error(op, logger.String("failed to decode request", err.Error()))
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if err := request.validate(); err != nil {
		h.log.Error(op, logger.String("failed to validate request", err.Error()))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.orderSubmitter.Submit(r.Context(), request.toDTO())

	var partial *internalErrors.PartialFailure

	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case internalErrors.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &partial):
		h.log.Warn(op, logger.String("partial failure", err.Error()))
		w.WriteHeader(http.StatusAccepted)
	default:
		h.log.Error(op, logger.String("failed to submit order", err.Error()))
		http.Error(w, "failed to save order", http.StatusInternalServerError)
	}
}
