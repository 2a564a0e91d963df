package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "venuebook.notifications",
		RetryMax:         0,
		Timeout:          publishTimeout,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: false,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaPublisher publishes notifications with a sarama sync producer
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func newSaramaConfig(cfg *KafkaProducerConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = cfg.RequiredAcks
	saramaConfig.Producer.Compression = cfg.CompressionType
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = cfg.Timeout
	saramaConfig.Producer.Idempotent = cfg.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = cfg.MaxMessageBytes

	// a dead broker must fail fast instead of holding the request
	saramaConfig.Net.DialTimeout = cfg.Timeout
	saramaConfig.Net.ReadTimeout = cfg.Timeout
	saramaConfig.Net.WriteTimeout = cfg.Timeout

	// idempotent producers require a single in-flight request
	if cfg.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// same recipient, same partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	return saramaConfig
}

func NewKafkaPublisher(cfg *KafkaProducerConfig) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return newKafkaPublisher(producer, cfg.Topic), nil
}

func newKafkaPublisher(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, notification *Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(notification.PartitionKey()),
		Value:     sarama.ByteEncoder(body),
		Headers:   headers(notification),
		Timestamp: notification.CreatedAt,
	}

	// SendMessage has no context, so the wait is bounded here
	sent := make(chan error, 1)
	go func() {
		_, _, err := p.producer.SendMessage(message)
		sent <- err
	}()

	select {
	case err := <-sent:
		if err != nil {
			return fmt.Errorf("failed to send notification to Kafka: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send notification to Kafka: %w", ctx.Err())
	}
}

func headers(n *Notification) []sarama.RecordHeader {
	h := []sarama.RecordHeader{
		{Key: []byte("notification_id"), Value: []byte(n.ID.String())},
		{Key: []byte("notification_type"), Value: []byte(n.Type)},
		{Key: []byte("priority"), Value: []byte(n.Priority)},
		{Key: []byte("recipient_id"), Value: []byte(n.RecipientID.String())},
		{Key: []byte("producer"), Value: []byte("venuebook-api")},
	}
	if n.EventID != nil {
		h = append(h, sarama.RecordHeader{Key: []byte("event_id"), Value: []byte(n.EventID.String())})
	}
	if n.PaymentID != nil {
		h = append(h, sarama.RecordHeader{Key: []byte("payment_id"), Value: []byte(n.PaymentID.String())})
	}
	return h
}

func (p *KafkaPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}
