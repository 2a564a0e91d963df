package notifications

import (
	"context"
	"log/slog"
	"time"

	"venuebook/pkg/logger"
)

const publishTimeout = 5 * time.Second

// Service publishes notifications after the business write has committed.
// Failures are logged and never returned.
type Service interface {
	Notify(ctx context.Context, notification *Notification)
}

type service struct {
	publisher Publisher
	log       *logger.Logger
}

func NewService(publisher Publisher, log *logger.Logger) Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &service{publisher: publisher, log: log}
}

func (s *service) Notify(ctx context.Context, notification *Notification) {
	// the request may finish before the broker answers
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, notification); err != nil {
		s.log.WarnContext(ctx, "failed to publish notification",
			slog.String("notification_id", notification.ID.String()),
			slog.String("type", string(notification.Type)),
			slog.Any("error", err),
		)
		return
	}

	s.log.DebugContext(ctx, "notification published",
		slog.String("notification_id", notification.ID.String()),
		slog.String("type", string(notification.Type)),
	)
}
