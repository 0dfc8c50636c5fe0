package consumer

import (
	"context"
	"errors"

	"github.com/IBM/sarama"

	"github.com/streamworks/order_pipeline/pkg/logger"
)

// Handler processes one delivered message. A nil return acknowledges it;
// an error leaves the offset unmarked so the message is delivered again.
type Handler func(ctx context.Context, payload []byte) error

// ConsumerGroup subscribes a handler to one topic with at-least-once
// delivery. Several instances may join the same group; Kafka spreads
// partitions across them.
type ConsumerGroup struct {
	log logger.Logger

	group   sarama.ConsumerGroup
	topic   string
	handler Handler
}

func NewConsumerGroup(
	log logger.Logger,
	brokerList []string,
	groupID string,
	topic string,
	handler Handler,
) (*ConsumerGroup, error) {
	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokerList, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerGroup{
		log:     log,
		group:   group,
		topic:   topic,
		handler: handler,
	}, nil
}

// Run blocks consuming until ctx is cancelled. Consume returns on every
// rebalance, so it is called in a loop.
func (c *ConsumerGroup) Run(ctx context.Context) error {
	const op = "brokers.kafka.consumer.Run"

	go func() {
		for groupErr := range c.group.Errors() {
			c.log.Warn(op, logger.String("error", groupErr.Error()))
		}
	}()

	for {
		err := c.group.Consume(ctx, []string{c.topic}, c)

		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			// A handler error ended the session. Rejoin; consumption
			// resumes from the last committed offset, so the failed
			// message comes back.
			c.log.Warn(op, logger.String("error", err.Error()))
		}
	}
}

func (c *ConsumerGroup) Close() error {
	return c.group.Close()
}

func (c *ConsumerGroup) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *ConsumerGroup) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *ConsumerGroup) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	const op = "brokers.kafka.consumer.ConsumeClaim"

	for message := range claim.Messages() {
		if err := c.handler(session.Context(), message.Value); err != nil {
			// End the session here. Skipping ahead would let a later
			// MarkMessage commit the partition past this offset and the
			// failed message would never come back.
			c.log.Warn(op,
				logger.String("topic", message.Topic),
				logger.Int64("offset", message.Offset),
				logger.String("error", err.Error()),
			)
			return err
		}

		session.MarkMessage(message, "")
	}

	return nil
}
