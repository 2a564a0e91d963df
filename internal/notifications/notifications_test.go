package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"venuebook/internal/shared/config"
	"venuebook/pkg/logger"
)

func TestBuilder(t *testing.T) {
	userID, eventID := uuid.New(), uuid.New()
	n := NewBuilder(TypeBookingConfirmed).
		WithRecipient(userID, "karim@example.com").
		WithEvent(eventID).
		With("amount", 1200.0).
		Build()

	if n.Priority != PriorityHigh {
		t.Errorf("priority = %s", n.Priority)
	}
	if n.PartitionKey() != userID.String() {
		t.Errorf("partition key = %s", n.PartitionKey())
	}
	if n.EventID == nil || *n.EventID != eventID {
		t.Error("event context missing")
	}
	if n.Subject == "" {
		t.Error("default subject missing")
	}
}

func TestKafkaPublisherSendsKeyedMessage(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	userID := uuid.New()

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got Notification
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != TypePaymentRefunded || got.RecipientID != userID {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := newKafkaPublisher(producer, "venuebook.notifications")
	n := NewBuilder(TypePaymentRefunded).WithRecipient(userID, "").Build()
	if err := p.Publish(context.Background(), n); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestKafkaPublisherSurfacesBrokerError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newKafkaPublisher(producer, "venuebook.notifications")
	err := p.Publish(context.Background(), NewBuilder(TypePaymentFailed).Build())
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected broker error, got %v", err)
	}
	_ = p.Close()
}

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, *Notification) error {
	f.calls++
	return errors.New("broker down")
}
func (f *failingPublisher) Close() error { return nil }

func TestServiceSwallowsPublishErrors(t *testing.T) {
	pub := &failingPublisher{}
	svc := NewService(pub, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Notify(ctx, NewBuilder(TypeEventCancelled).Build())

	if pub.calls != 1 {
		t.Fatalf("publisher called %d times", pub.calls)
	}
}

func TestNewPublisherDrivers(t *testing.T) {
	p, err := NewPublisher(config.BrokerConfig{Driver: "none"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(NoopPublisher); !ok {
		t.Errorf("driver none returned %T", p)
	}

	if _, err := NewPublisher(config.BrokerConfig{Driver: "carrier-pigeon"}); err == nil {
		t.Error("unknown driver accepted")
	}
}

func TestGroupHandlerDecodes(t *testing.T) {
	var got *Notification
	h := &groupHandler{
		handler: func(_ context.Context, n *Notification) error { got = n; return nil },
		log:     logger.Discard(),
	}

	body, _ := NewBuilder(TypeBookingPending).Build().ToJSON()
	if err := h.process(context.Background(), body); err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Type != TypeBookingPending {
		t.Fatalf("decoded %+v", got)
	}
	if err := h.process(context.Background(), []byte("{")); err == nil {
		t.Error("malformed message accepted")
	}
}

func TestKafkaProducerDoesNotRetry(t *testing.T) {
	cfg := newSaramaConfig(DefaultKafkaProducerConfig())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid sarama config: %v", err)
	}
	if cfg.Producer.Retry.Max != 0 {
		t.Errorf("Producer.Retry.Max = %d, want 0", cfg.Producer.Retry.Max)
	}
	if cfg.Net.WriteTimeout > publishTimeout || cfg.Net.DialTimeout > publishTimeout {
		t.Errorf("network timeouts exceed the publish budget: %+v", cfg.Net)
	}
}

type stalledProducer struct {
	sarama.SyncProducer
	release chan struct{}
}

func (s *stalledProducer) SendMessage(*sarama.ProducerMessage) (int32, int64, error) {
	<-s.release
	return 0, 0, nil
}

func TestKafkaPublisherStopsWaitingAtDeadline(t *testing.T) {
	producer := &stalledProducer{release: make(chan struct{})}
	defer close(producer.release)

	p := newKafkaPublisher(producer, "venuebook.notifications")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.Publish(ctx, NewBuilder(TypeBookingConfirmed).Build())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if waited := time.Since(start); waited > time.Second {
		t.Errorf("publish blocked for %v", waited)
	}
}

type fakeChannel struct {
	closed    bool
	published int
}

func (f *fakeChannel) PublishWithContext(context.Context, string, string, bool, bool, amqp.Publishing) error {
	if f.closed {
		return amqp.ErrClosed
	}
	f.published++
	return nil
}
func (f *fakeChannel) IsClosed() bool { return f.closed }
func (f *fakeChannel) Close() error   { f.closed = true; return nil }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func TestRabbitMQPublisherRedialsClosedChannel(t *testing.T) {
	var dials []*fakeChannel
	p := newRabbitMQPublisher("venuebook.notifications", func() (amqpChannel, io.Closer, error) {
		ch := &fakeChannel{}
		dials = append(dials, ch)
		return ch, nopCloser{}, nil
	})

	n := NewBuilder(TypeBookingConfirmed).Build()
	if err := p.Publish(context.Background(), n); err != nil {
		t.Fatalf("first publish: %v", err)
	}

	// broker restarted
	dials[0].closed = true

	if err := p.Publish(context.Background(), n); err != nil {
		t.Fatalf("publish after drop: %v", err)
	}
	if len(dials) != 2 || dials[1].published != 1 {
		t.Fatalf("dials = %d, want a fresh channel to carry the message", len(dials))
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRabbitMQPublisherReportsDialFailure(t *testing.T) {
	p := newRabbitMQPublisher("q", func() (amqpChannel, io.Closer, error) {
		return nil, nil, errors.New("connection refused")
	})
	if err := p.Publish(context.Background(), NewBuilder(TypePaymentFailed).Build()); err == nil {
		t.Fatal("publish succeeded without a connection")
	}
}
