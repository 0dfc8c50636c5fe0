package order

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/streamworks/order_pipeline/internal/app/http"
	"github.com/streamworks/order_pipeline/internal/cache_impl"
	"github.com/streamworks/order_pipeline/internal/config"
	deliveryHTTP "github.com/streamworks/order_pipeline/internal/delivery/http"
	healthHandler "github.com/streamworks/order_pipeline/internal/delivery/http/health"
	createHandler "github.com/streamworks/order_pipeline/internal/delivery/http/order/create"
	getHandler "github.com/streamworks/order_pipeline/internal/delivery/http/order/get"
	subscriptionsHandler "github.com/streamworks/order_pipeline/internal/delivery/http/subscriptions"
	"github.com/streamworks/order_pipeline/internal/dispatcher/receipt"
	"github.com/streamworks/order_pipeline/internal/domain/models"
	"github.com/streamworks/order_pipeline/internal/lib/retry"
	orderRepository "github.com/streamworks/order_pipeline/internal/repository/order"
	outboxRepository "github.com/streamworks/order_pipeline/internal/repository/outbox"
	getService "github.com/streamworks/order_pipeline/internal/services/order/get"
	submitService "github.com/streamworks/order_pipeline/internal/services/order/submit"
	"github.com/streamworks/order_pipeline/pkg/brokers/kafka/producer"
	"github.com/streamworks/order_pipeline/pkg/databases/postgres"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

const (
	cacheSize = 256
	cacheTTL  = 10 * time.Minute
)

// Run wires the ingest side and blocks until SIGTERM/SIGINT.
func Run() {
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewPostgresDB(ctx, log, cfg.Postgres.DSN())
	if err != nil {
		panic(fmt.Sprintf("failed to connect to postgres: %v", err))
	}

	kafkaProducer, err := producer.NewProducer(log, cfg.Kafka.BrokerList)
	if err != nil {
		panic(fmt.Sprintf("failed to create kafka producer: %v", err))
	}

	orderRepo := orderRepository.NewOrderRepository(log, db.GetDB())
	outboxRepo := outboxRepository.New(log, db.GetDB())

	lru := expirable.NewLRU[string, *models.Order](cacheSize, nil, cacheTTL)
	cache := cache_impl.NewCache(lru, log)

	policy := retry.Policy{Attempts: cfg.Retry.Attempts, Backoff: cfg.Retry.Backoff()}

	receiptDispatcher := receipt.NewDispatcher(log, cfg.Receipt.Dir, policy)

	submitSvc := submitService.New(
		log,
		orderRepo,
		kafkaProducer,
		receiptDispatcher,
		outboxRepo,
		cache,
		cfg.Kafka.OrderEventTopic,
		policy,
	)
	getSvc := getService.New(log, cache, orderRepo)

	router := deliveryHTTP.NewOrderRouter(
		createHandler.NewHandler(log, submitSvc),
		getHandler.NewHandler(log, getSvc),
		subscriptionsHandler.NewHandler(log, nil),
		healthHandler.NewHandler(log, map[string]healthHandler.Check{
			"postgres": db.PingContext,
			"kafka":    kafkaProducer.Healthy,
		}),
	)

	httpServer := httpapp.NewApp(log, router, cfg.HTTP.Port)

	go httpServer.RunWithPanic()

	log.Info("order service started", logger.Int("port", cfg.HTTP.Port))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	log.Info("stopping order service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err = httpServer.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop http server", logger.String("error", err.Error()))
	}

	if err = kafkaProducer.Close(); err != nil {
		log.Error("failed to close kafka producer", logger.String("error", err.Error()))
	}

	if err = db.Close(); err != nil {
		log.Error("failed to close postgres", logger.String("error", err.Error()))
	}

	log.Info("order service stopped")
}
