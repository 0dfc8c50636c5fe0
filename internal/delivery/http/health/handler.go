package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/streamworks/order_pipeline/pkg/logger"
)

// Check probes one dependency. A nil return means up.
type Check func(ctx context.Context) error

type Handler struct {
	log    logger.Logger
	checks map[string]Check
}

func NewHandler(log logger.Logger, checks map[string]Check) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

type response struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Healthz reports 200 with every dependency up and 503 otherwise, naming the
// dependency that is down.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.health.Healthz"

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := response{
		Status:       "healthy",
		Dependencies: make(map[string]string, len(h.checks)),
	}

	code := http.StatusOK

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn(op,
				logger.String("dependency", name),
				logger.String("error", err.Error()),
			)
			resp.Dependencies[name] = "down"
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}

		resp.Dependencies[name] = "up"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
	}
}
