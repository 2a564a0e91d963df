package events

import (
	"time"

	"github.com/google/uuid"

	"venuebook/internal/shared/utils/response"
	"venuebook/internal/venues"
)

type EventList = response.Page[Event]

// Availability is the verdict for one requested slot
type Availability struct {
	Available bool      `json:"available"`
	VenueID   uuid.UUID `json:"venueId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Reasons   []string  `json:"reasons,omitempty"`
	Conflicts []Slot    `json:"conflicts,omitempty"`

	// first blocking failure, as a domain error
	err error
}

// VenueSchedule lists the booked slots of a venue in a window
type VenueSchedule struct {
	VenueID        uuid.UUID             `json:"venueId"`
	From           time.Time             `json:"from"`
	To             time.Time             `json:"to"`
	OperatingHours venues.OperatingHours `json:"operatingHours,omitempty"`
	Booked         []Slot                `json:"booked"`
}
