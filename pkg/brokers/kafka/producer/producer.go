package producer

import (
	"context"

	"github.com/IBM/sarama"

	"github.com/streamworks/order_pipeline/pkg/logger"
)

// Producer publishes synchronously with WaitForAll acks: a returned nil means
// the broker has the message. Retrying on transient failures is the caller's
// concern.
type Producer struct {
	log logger.Logger

	client   sarama.Client
	producer sarama.SyncProducer
}

func NewProducer(log logger.Logger, brokerList []string) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true

	client, err := sarama.NewClient(brokerList, cfg)
	if err != nil {
		return nil, err
	}

	syncProducer, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Producer{
		log:      log,
		client:   client,
		producer: syncProducer,
	}, nil
}

// Publish sends one message keyed by key. Messages with the same key land in
// the same partition, which is all the ordering this pipeline relies on.
func (p *Producer) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	const op = "brokers.kafka.producer.Publish"

	// sarama's sync producer does not take a context; honor cancellation
	// before handing the message over.
	if err := ctx.Err(); err != nil {
		return err
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.log.Error(op, logger.String("topic", topic), logger.String("error", err.Error()))
		return err
	}

	p.log.Debug(op,
		logger.String("topic", topic),
		logger.Int("partition", int(partition)),
		logger.Int64("offset", offset),
	)

	return nil
}

// Healthy reports whether the broker set is reachable. Used by the liveness
// endpoint. RefreshMetadata has no context support, so it runs on the side
// and the caller's deadline cuts the wait short.
func (p *Producer) Healthy(ctx context.Context) error {
	done := make(chan error, 1)

	go func() {
		done <- p.client.RefreshMetadata()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Producer) Close() error {
	// NewSyncProducerFromClient leaves the client open; close both.
	if err := p.producer.Close(); err != nil {
		_ = p.client.Close()
		return err
	}

	return p.client.Close()
}
