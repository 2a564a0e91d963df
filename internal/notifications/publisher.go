package notifications

import (
	"context"
	"fmt"
	"strings"

	"venuebook/internal/shared/config"
)

// Publisher hands notifications to a message broker
type Publisher interface {
	Publish(ctx context.Context, notification *Notification) error
	Close() error
}

const (
	DriverKafka    = "kafka"
	DriverRabbitMQ = "rabbitmq"
	DriverNone     = "none"
)

// NewPublisher builds the publisher selected by cfg.Driver
func NewPublisher(cfg config.BrokerConfig) (Publisher, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverKafka:
		producerConfig := DefaultKafkaProducerConfig()
		producerConfig.Brokers = cfg.KafkaBrokers
		producerConfig.Topic = cfg.KafkaTopic
		return NewKafkaPublisher(producerConfig)
	case DriverRabbitMQ:
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	case DriverNone, "":
		return NoopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown broker driver %q", cfg.Driver)
	}
}

// NoopPublisher drops every notification
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *Notification) error { return nil }
func (NoopPublisher) Close() error                                { return nil }
