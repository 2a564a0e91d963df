package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"venuebook/internal/notifications"
	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/middleware"
	"venuebook/internal/shared/pagination"
	"venuebook/internal/venues"
	"venuebook/pkg/logger"
)

var fixedNow = time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)

type fakeEvents struct {
	events    map[uuid.UUID]*Event
	lastOwner *uuid.UUID
}

func (f *fakeEvents) FindByID(_ context.Context, id uuid.UUID) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, apperrors.NotFound("event")
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEvents) List(_ context.Context, q pagination.Query, _ Filters, ownerID *uuid.UUID) ([]Event, int64, error) {
	f.lastOwner = ownerID
	var out []Event
	for _, e := range f.events {
		if ownerID == nil || e.UserID == *ownerID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEvents) Transition(_ context.Context, id uuid.UUID, from, to Status, reason string) error {
	e := f.events[id]
	if !from.CanTransitionTo(to) {
		return apperrors.BusinessRule("bad transition")
	}
	if e.Status != from {
		return apperrors.Conflict("changed")
	}
	e.Status = to
	if to == StatusCancelled {
		now := fixedNow
		e.CancelledAt = &now
		e.CancellationReason = reason
	}
	return nil
}

func (f *fakeEvents) Overlapping(_ context.Context, venueID uuid.UUID, start, end time.Time) ([]Slot, error) {
	var out []Slot
	for _, e := range f.events {
		if e.VenueID == venueID && e.Status.IsLive() && e.StartTime.Before(end) && e.EndTime.After(start) {
			out = append(out, Slot{EventID: e.ID, StartTime: e.StartTime, EndTime: e.EndTime, Status: e.Status})
		}
	}
	return out, nil
}

type fakeVenues struct {
	venues.Repository
	venue *venues.Venue
}

func (f *fakeVenues) FindByID(_ context.Context, id uuid.UUID) (*venues.Venue, error) {
	if f.venue == nil || f.venue.ID != id {
		return nil, apperrors.NotFound("venue")
	}
	return f.venue, nil
}

func newTestService() (*service, *fakeEvents, *venues.Venue) {
	venue := &venues.Venue{
		ID:       uuid.New(),
		Name:     "Grand Ballroom",
		Capacity: 200,
		IsActive: true,
		OperatingHours: venues.OperatingHours{
			"friday": {Closed: true},
		},
	}
	repo := &fakeEvents{events: map[uuid.UUID]*Event{}}
	svc := NewService(repo, &fakeVenues{venue: venue}, notifications.NewService(nil, logger.Discard()), logger.Discard()).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, venue
}

func customer() *middleware.Principal {
	return &middleware.Principal{UserID: uuid.NewString(), Role: constants.RoleCustomer}
}

func (f *fakeEvents) add(userID string, venueID uuid.UUID, start time.Time, status Status) *Event {
	e := &Event{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(userID),
		VenueID:   venueID,
		StartTime: start,
		EndTime:   start.Add(3 * time.Hour),
		Status:    status,
	}
	f.events[e.ID] = e
	return e
}

func TestEnsureBookableDetectsOverlap(t *testing.T) {
	svc, repo, venue := newTestService()
	// 2026-11-03 is a Tuesday
	start := time.Date(2026, 11, 3, 18, 0, 0, 0, time.UTC)
	repo.add(uuid.NewString(), venue.ID, start, StatusConfirmed)

	err := svc.EnsureBookable(context.Background(), venue, start.Add(time.Hour), start.Add(4*time.Hour), 50)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// back-to-back slots do not overlap
	if err := svc.EnsureBookable(context.Background(), venue, start.Add(3*time.Hour), start.Add(5*time.Hour), 50); err != nil {
		t.Fatalf("adjacent slot rejected: %v", err)
	}
}

func TestEnsureBookableIgnoresCancelledEvents(t *testing.T) {
	svc, repo, venue := newTestService()
	start := time.Date(2026, 11, 3, 18, 0, 0, 0, time.UTC)
	repo.add(uuid.NewString(), venue.ID, start, StatusCancelled)

	if err := svc.EnsureBookable(context.Background(), venue, start, start.Add(time.Hour), 10); err != nil {
		t.Fatalf("cancelled event blocked the slot: %v", err)
	}
}

func TestEnsureBookableRules(t *testing.T) {
	svc, _, venue := newTestService()
	tuesday := time.Date(2026, 11, 3, 10, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 11, 6, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		people int
		want   error
	}{
		{"end before start", tuesday, tuesday.Add(-time.Hour), 10, apperrors.ErrValidation},
		{"in the past", fixedNow.Add(-48 * time.Hour), fixedNow.Add(-47 * time.Hour), 10, apperrors.ErrValidation},
		{"over capacity", tuesday, tuesday.Add(time.Hour), 500, apperrors.New(apperrors.KindBusinessRule, "")},
		{"closed day", friday, friday.Add(time.Hour), 10, apperrors.New(apperrors.KindBusinessRule, "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.EnsureBookable(context.Background(), venue, tt.start, tt.end, tt.people)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want kind of %v", err, tt.want)
			}
		})
	}
}

func TestCheckAvailabilityCollectsReasons(t *testing.T) {
	svc, _, venue := newTestService()
	friday := time.Date(2026, 11, 6, 10, 0, 0, 0, time.UTC)

	a, err := svc.CheckAvailability(context.Background(), &AvailabilityRequest{
		VenueID:     venue.ID.String(),
		StartTime:   friday,
		EndTime:     friday.Add(2 * time.Hour),
		PeopleCount: 1000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if a.Available {
		t.Fatal("slot reported available")
	}
	if len(a.Reasons) != 2 {
		t.Errorf("reasons = %v, want capacity and closed day", a.Reasons)
	}
}

func TestCustomerSeesOnlyOwnEvents(t *testing.T) {
	svc, repo, venue := newTestService()
	me := customer()
	start := time.Date(2026, 11, 3, 18, 0, 0, 0, time.UTC)
	mine := repo.add(me.UserID, venue.ID, start, StatusConfirmed)
	other := repo.add(uuid.NewString(), venue.ID, start.Add(24*time.Hour), StatusConfirmed)

	page, err := svc.List(context.Background(), me, pagination.Query{}, Filters{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Pagination.Total != 1 || page.Items[0].ID != mine.ID {
		t.Fatalf("customer listing = %+v", page.Items)
	}

	if _, err := svc.GetByID(context.Background(), me, other.ID.String()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign event: expected not found, got %v", err)
	}

	staff := &middleware.Principal{UserID: uuid.NewString(), Role: constants.RoleOrganizer}
	if _, err := svc.List(context.Background(), staff, pagination.Query{}, Filters{}); err != nil {
		t.Fatal(err)
	}
	if repo.lastOwner != nil {
		t.Error("staff listing was restricted to an owner")
	}
}

func TestCancelLifecycle(t *testing.T) {
	svc, repo, venue := newTestService()
	me := customer()
	event := repo.add(me.UserID, venue.ID, time.Date(2026, 11, 3, 18, 0, 0, 0, time.UTC), StatusConfirmed)

	cancelled, err := svc.Cancel(context.Background(), me, event.ID.String(), "")
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if cancelled.Status != StatusCancelled || cancelled.CancellationReason == "" {
		t.Fatalf("cancelled event = %+v", cancelled)
	}

	if _, err := svc.Cancel(context.Background(), me, event.ID.String(), ""); !errors.Is(err, apperrors.New(apperrors.KindBusinessRule, "")) {
		t.Fatalf("second cancel: expected business rule error, got %v", err)
	}

	admin := &middleware.Principal{UserID: uuid.NewString(), Role: constants.RoleAdmin}
	_, err = svc.UpdateStatus(context.Background(), admin, event.ID.String(), &UpdateStatusRequest{Status: StatusConfirmed})
	if !errors.Is(err, apperrors.New(apperrors.KindBusinessRule, "")) {
		t.Fatalf("reconfirming a cancelled event: got %v", err)
	}
}

func TestCustomerCannotCancelStartedEvent(t *testing.T) {
	svc, repo, venue := newTestService()
	me := customer()
	event := repo.add(me.UserID, venue.ID, fixedNow.Add(-time.Hour), StatusConfirmed)

	if _, err := svc.Cancel(context.Background(), me, event.ID.String(), ""); err == nil {
		t.Fatal("started event was cancelled by its customer")
	}
}

func TestVenueScheduleWindow(t *testing.T) {
	svc, repo, venue := newTestService()
	repo.add(uuid.NewString(), venue.ID, fixedNow.Add(48*time.Hour), StatusPending)

	schedule, err := svc.VenueSchedule(context.Background(), venue.ID.String(), ScheduleQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule.Booked) != 1 {
		t.Errorf("booked = %d, want 1", len(schedule.Booked))
	}
	if got := schedule.To.Sub(schedule.From); got != defaultScheduleWindow {
		t.Errorf("window = %v", got)
	}

	_, err = svc.VenueSchedule(context.Background(), venue.ID.String(), ScheduleQuery{From: fixedNow, To: fixedNow.AddDate(1, 0, 0)})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("oversized window: got %v", err)
	}
}
