package events

import "time"

type AvailabilityRequest struct {
	VenueID     string    `json:"venueId" validate:"required,uuid"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	PeopleCount int       `json:"peopleCount" validate:"omitempty,min=1,max=10000"`
}

type CancelEventRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// UpdateStatusRequest is the staff override of an event's status
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=confirmed cancelled"`
	Reason string `json:"reason" validate:"max=500"`
}

type ScheduleQuery struct {
	From time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}
