package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"venuebook/pkg/logger"
)

// Handler delivers one decoded notification
type Handler func(ctx context.Context, notification *Notification) error

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeout   time.Duration
	HeartbeatTimeout time.Duration
	OffsetOldest     bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "venuebook-notifier",
		Topics:           []string{"venuebook.notifications"},
		SessionTimeout:   30 * time.Second,
		HeartbeatTimeout: 3 * time.Second,
	}
}

// Consumer reads notifications from Kafka and passes them to a Handler
type Consumer struct {
	group   sarama.ConsumerGroup
	topics  []string
	handler Handler
	log     *logger.Logger
}

func NewConsumer(cfg *ConsumerConfig, handler Handler, log *logger.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = cfg.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = cfg.HeartbeatTimeout
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second
	if cfg.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{group: group, topics: cfg.Topics, handler: handler, log: log}, nil
}

// Run consumes until ctx is cancelled
func (c *Consumer) Run(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.log.Error("consumer group error", slog.Any("error", err))
		}
	}()

	h := &groupHandler{handler: c.handler, log: c.log}
	for {
		if err := c.group.Consume(ctx, c.topics, h); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.Error("error consuming notifications", slog.Any("error", err))
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type groupHandler struct {
	handler Handler
	log     *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.process(session.Context(), message.Value); err != nil {
				h.log.Error("failed to process notification",
					slog.String("topic", message.Topic),
					slog.Int64("offset", message.Offset),
					slog.Any("error", err),
				)
			}
			// a poison message is logged and skipped
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *groupHandler) process(ctx context.Context, value []byte) error {
	var notification Notification
	if err := json.Unmarshal(value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return h.handler(ctx, &notification)
}

// LogHandler records each delivery in the structured log
func LogHandler(log *logger.Logger) Handler {
	return func(ctx context.Context, n *Notification) error {
		log.InfoContext(ctx, "notification delivered",
			slog.String("notification_id", n.ID.String()),
			slog.String("type", string(n.Type)),
			slog.String("priority", string(n.Priority)),
			slog.String("recipient_id", n.RecipientID.String()),
			slog.String("subject", n.Subject),
		)
		return nil
	}
}
