package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"venuebook/internal/notifications"
	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/middleware"
	"venuebook/internal/shared/pagination"
	"venuebook/internal/shared/utils/response"
	"venuebook/internal/venues"
	"venuebook/pkg/logger"
)

type Service interface {
	List(ctx context.Context, viewer *middleware.Principal, q pagination.Query, f Filters) (*EventList, error)
	GetByID(ctx context.Context, viewer *middleware.Principal, id string) (*Event, error)
	Cancel(ctx context.Context, viewer *middleware.Principal, id string, reason string) (*Event, error)
	UpdateStatus(ctx context.Context, actor *middleware.Principal, id string, req *UpdateStatusRequest) (*Event, error)

	CheckAvailability(ctx context.Context, req *AvailabilityRequest) (*Availability, error)
	VenueSchedule(ctx context.Context, venueID string, q ScheduleQuery) (*VenueSchedule, error)
	// EnsureBookable returns the first rule a slot violates as a domain error
	EnsureBookable(ctx context.Context, venue *venues.Venue, start, end time.Time, people int) error
}

type service struct {
	repo     Repository
	venues   venues.Repository
	notifier notifications.Service
	log      *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, venueRepo venues.Repository, notifier notifications.Service, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		venues:   venueRepo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

func parseID(id, field string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.Field(field, field+" must be a valid UUID")
	}
	return parsed, nil
}

func (s *service) List(ctx context.Context, viewer *middleware.Principal, q pagination.Query, f Filters) (*EventList, error) {
	q.Normalize()
	if !f.From.IsZero() && !f.To.IsZero() && !f.To.After(f.From) {
		return nil, apperrors.Field("to", "to must be after from")
	}

	var ownerID *uuid.UUID
	if !constants.IsStaff(viewer.Role) {
		id, err := uuid.Parse(viewer.UserID)
		if err != nil {
			return nil, apperrors.Unauthorized("invalid account")
		}
		ownerID = &id
	}

	items, total, err := s.repo.List(ctx, q, f, ownerID)
	if err != nil {
		return nil, err
	}
	page := response.NewPage(items, q.Page, q.Limit, total)
	return &page, nil
}

// GetByID hides other customers' events behind a 404
func (s *service) GetByID(ctx context.Context, viewer *middleware.Principal, id string) (*Event, error) {
	eventID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !constants.IsStaff(viewer.Role) && event.UserID.String() != viewer.UserID {
		return nil, apperrors.NotFound("event")
	}
	return event, nil
}

func (s *service) Cancel(ctx context.Context, viewer *middleware.Principal, id string, reason string) (*Event, error) {
	event, err := s.GetByID(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if event.Status == StatusCancelled {
		return nil, apperrors.BusinessRule("event is already cancelled")
	}
	if !constants.IsStaff(viewer.Role) && !event.StartTime.After(s.now()) {
		return nil, apperrors.BusinessRule("an event that has started can no longer be cancelled")
	}
	if reason == "" {
		reason = "cancelled by customer"
	}

	return s.transition(ctx, viewer, event, StatusCancelled, reason)
}

func (s *service) UpdateStatus(ctx context.Context, actor *middleware.Principal, id string, req *UpdateStatusRequest) (*Event, error) {
	event, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if event.Status == req.Status {
		return event, nil
	}

	reason := req.Reason
	if reason == "" && req.Status == StatusCancelled {
		reason = "cancelled by " + actor.Role
	}
	return s.transition(ctx, actor, event, req.Status, reason)
}

func (s *service) transition(ctx context.Context, actor *middleware.Principal, event *Event, to Status, reason string) (*Event, error) {
	if err := s.repo.Transition(ctx, event.ID, event.Status, to, reason); err != nil {
		return nil, err
	}

	if to == StatusCancelled {
		s.log.LogEventCancelled(ctx, event.ID.String(), actor.UserID, reason)
		s.notifier.Notify(ctx, notifications.NewBuilder(notifications.TypeEventCancelled).
			WithRecipient(event.UserID, "").
			WithEvent(event.ID).
			With("reason", reason).
			With("startTime", event.StartTime).
			Build())
	}

	return s.repo.FindByID(ctx, event.ID)
}
