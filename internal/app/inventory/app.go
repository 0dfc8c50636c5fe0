package inventory

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/streamworks/order_pipeline/internal/app/http"
	"github.com/streamworks/order_pipeline/internal/config"
	deliveryHTTP "github.com/streamworks/order_pipeline/internal/delivery/http"
	healthHandler "github.com/streamworks/order_pipeline/internal/delivery/http/health"
	subscriptionsHandler "github.com/streamworks/order_pipeline/internal/delivery/http/subscriptions"
	"github.com/streamworks/order_pipeline/internal/domain/models"
	inventoryRepository "github.com/streamworks/order_pipeline/internal/repository/inventory"
	consumeService "github.com/streamworks/order_pipeline/internal/services/inventory/consume"
	"github.com/streamworks/order_pipeline/pkg/brokers/kafka/consumer"
	"github.com/streamworks/order_pipeline/pkg/brokers/kafka/producer"
	"github.com/streamworks/order_pipeline/pkg/databases/postgres"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

// Run wires the consume side: the consumer group applying order events and
// the discovery/liveness HTTP surface. Blocks until SIGTERM/SIGINT.
func Run() {
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.NewPostgresDB(ctx, log, cfg.Postgres.DSN())
	if err != nil {
		panic(fmt.Sprintf("failed to connect to postgres: %v", err))
	}

	// The producer here only feeds the dead-letter topic.
	kafkaProducer, err := producer.NewProducer(log, cfg.Kafka.BrokerList)
	if err != nil {
		panic(fmt.Sprintf("failed to create kafka producer: %v", err))
	}

	inventoryRepo := inventoryRepository.NewInventoryRepository(log, db.GetDB())

	consumeSvc := consumeService.New(log, inventoryRepo, kafkaProducer, cfg.Kafka.DeadLetterTopic)

	consumerGroup, err := consumer.NewConsumerGroup(
		log,
		cfg.Kafka.BrokerList,
		cfg.Kafka.ConsumerGroup,
		cfg.Kafka.OrderEventTopic,
		consumeSvc.OnEvent,
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create kafka consumer group: %v", err))
	}

	subs := []models.Subscription{
		{
			PubSubName: "pubsub",
			Topic:      cfg.Kafka.OrderEventTopic,
			Route:      "/orders",
		},
	}

	router := deliveryHTTP.NewInventoryRouter(
		subscriptionsHandler.NewHandler(log, subs),
		healthHandler.NewHandler(log, map[string]healthHandler.Check{
			"postgres": db.PingContext,
			"kafka":    kafkaProducer.Healthy,
		}),
	)

	httpServer := httpapp.NewApp(log, router, cfg.HTTP.Port)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return consumerGroup.Run(gCtx)
	})

	g.Go(func() error {
		return httpServer.Run()
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return httpServer.Stop(shutdownCtx)
	})

	log.Info("inventory service started", logger.Int("port", cfg.HTTP.Port))

	if err = g.Wait(); err != nil && ctx.Err() == nil {
		log.Error("inventory service failed", logger.String("error", err.Error()))
	}

	if err = consumerGroup.Close(); err != nil {
		log.Error("failed to close consumer group", logger.String("error", err.Error()))
	}

	if err = kafkaProducer.Close(); err != nil {
		log.Error("failed to close kafka producer", logger.String("error", err.Error()))
	}

	if err = db.Close(); err != nil {
		log.Error("failed to close postgres", logger.String("error", err.Error()))
	}

	log.Info("inventory service stopped")
}
