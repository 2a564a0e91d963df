package events

import (
	"context"
	"fmt"
	"time"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/venues"
)

const (
	defaultScheduleWindow = 30 * 24 * time.Hour
	maxScheduleWindow     = 92 * 24 * time.Hour
)

// evaluate runs every booking rule for a slot and collects the failures.
// The first failure is kept as a domain error for EnsureBookable.
func (s *service) evaluate(ctx context.Context, venue *venues.Venue, start, end time.Time, people int) (*Availability, error) {
	a := &Availability{
		Available: true,
		VenueID:   venue.ID,
		StartTime: start,
		EndTime:   end,
	}
	reject := func(err *apperrors.Error) {
		a.Available = false
		a.Reasons = append(a.Reasons, err.Message)
		if a.err == nil {
			a.err = err
		}
	}

	if !end.After(start) {
		reject(apperrors.Field("endTime", "endTime must be after startTime"))
	}
	if !start.After(s.now()) {
		reject(apperrors.Field("startTime", "startTime must be in the future"))
	}
	if !venue.IsActive {
		reject(apperrors.BusinessRule("venue is not accepting bookings"))
	}
	if people > venue.Capacity {
		reject(apperrors.BusinessRule(fmt.Sprintf("peopleCount exceeds venue capacity of %d", venue.Capacity)))
	}
	if err := venue.CheckOperatingHours(start, end); err != nil {
		reject(apperrors.BusinessRule(err.Error()))
	}

	if end.After(start) {
		conflicts, err := s.repo.Overlapping(ctx, venue.ID, start, end)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			a.Conflicts = conflicts
			reject(apperrors.Conflict("venue is already booked for the requested time"))
		}
	}

	return a, nil
}

func (s *service) EnsureBookable(ctx context.Context, venue *venues.Venue, start, end time.Time, people int) error {
	a, err := s.evaluate(ctx, venue, start, end, people)
	if err != nil {
		return err
	}
	return a.err
}

func (s *service) CheckAvailability(ctx context.Context, req *AvailabilityRequest) (*Availability, error) {
	venueID, err := parseID(req.VenueID, "venueId")
	if err != nil {
		return nil, err
	}

	venue, err := s.venues.FindByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	return s.evaluate(ctx, venue, req.StartTime, req.EndTime, req.PeopleCount)
}

func (s *service) VenueSchedule(ctx context.Context, venueID string, q ScheduleQuery) (*VenueSchedule, error) {
	id, err := parseID(venueID, "id")
	if err != nil {
		return nil, err
	}

	from, to := q.From, q.To
	if from.IsZero() {
		from = s.now()
	}
	if to.IsZero() {
		to = from.Add(defaultScheduleWindow)
	}
	if !to.After(from) {
		return nil, apperrors.Field("to", "to must be after from")
	}
	if to.Sub(from) > maxScheduleWindow {
		return nil, apperrors.Field("to", "the schedule window may span at most 92 days")
	}

	venue, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !venue.IsActive {
		return nil, apperrors.NotFound("venue")
	}

	booked, err := s.repo.Overlapping(ctx, venue.ID, from, to)
	if err != nil {
		return nil, err
	}
	if booked == nil {
		booked = []Slot{}
	}

	return &VenueSchedule{
		VenueID:        venue.ID,
		From:           from,
		To:             to,
		OperatingHours: venue.OperatingHours,
		Booked:         booked,
	}, nil
}
