package main

import (
	"context"
	"fmt"

	"github.com/streamworks/order_pipeline/internal/config"
	"github.com/streamworks/order_pipeline/internal/outbox_producer"
	"github.com/streamworks/order_pipeline/pkg/brokers/kafka/producer"
	"github.com/streamworks/order_pipeline/pkg/databases/postgres"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

// One-shot republisher: drains publish_failures into the order topic.
// Intended to run periodically (cron or a scheduler sidecar).
func main() {
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewPostgresDB(ctx, log, cfg.Postgres.DSN())
	if err != nil {
		panic(fmt.Sprintf("failed connect to db: %v", err))
	}

	kafkaProducer, err := producer.NewProducer(log, cfg.Kafka.BrokerList)
	if err != nil {
		panic(fmt.Sprintf("failed to create kafka producer: %v", err))
	}

	republisher := outbox_producer.New(kafkaProducer, db.GetDB(), cfg.Kafka, log)

	if err = republisher.ProduceMessages(ctx); err != nil {
		panic(fmt.Sprintf("produce messages error: %v", err))
	}

	log.Info("queued events were successfully republished")
}
