package order_pipeline_http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	healthHandler "github.com/streamworks/order_pipeline/internal/delivery/http/health"
	createHandler "github.com/streamworks/order_pipeline/internal/delivery/http/order/create"
	getHandler "github.com/streamworks/order_pipeline/internal/delivery/http/order/get"
	subscriptionsHandler "github.com/streamworks/order_pipeline/internal/delivery/http/subscriptions"
)

// NewOrderRouter is the ingest-side surface: submit, query, discovery,
// liveness.
func NewOrderRouter(
	create *createHandler.Handler,
	get *getHandler.Handler,
	subscriptions *subscriptionsHandler.Handler,
	health *healthHandler.Handler,
) http.Handler {
	mux := chi.NewRouter()

	mux.Route("/orders", func(r chi.Router) {
		r.Post("/", create.Create)
		r.Get("/{orderID}", get.OrderByID)
	})

	mux.Get("/subscriptions", subscriptions.List)
	mux.Get("/healthz", health.Healthz)

	return mux
}

// NewInventoryRouter is the consume-side surface: the subscription topology
// the broker registers against, plus liveness.
func NewInventoryRouter(
	subscriptions *subscriptionsHandler.Handler,
	health *healthHandler.Handler,
) http.Handler {
	mux := chi.NewRouter()

	mux.Get("/subscriptions", subscriptions.List)
	mux.Get("/healthz", health.Healthz)

	return mux
}
