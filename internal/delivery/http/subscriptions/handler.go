package subscriptions

import (
	"encoding/json"
	"net/http"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

// Handler serves the static subscription topology. The broker runtime reads
// it once at registration; a publisher-only service serves an empty list.
type Handler struct {
	log  logger.Logger
	subs []models.Subscription
}

func NewHandler(log logger.Logger, subs []models.Subscription) *Handler {
	if subs == nil {
		subs = []models.Subscription{}
	}

	return &Handler{
		log:  log,
		subs: subs,
	}
}

func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	const op = "delivery.http.subscriptions.List"

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.subs); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
	}
}
