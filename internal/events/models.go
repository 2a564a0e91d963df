package events

import (
	"time"

	"github.com/google/uuid"

	"venuebook/internal/meals"
	"venuebook/internal/venues"
)

// Event is a booking of one venue slot, optionally catered
type Event struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID      uuid.UUID  `json:"userId" gorm:"type:uuid;not null;index"`
	VenueID     uuid.UUID  `json:"venueId" gorm:"type:uuid;not null;index"`
	MealID      *uuid.UUID `json:"mealId,omitempty" gorm:"type:uuid;index"`
	Title       string     `json:"title" gorm:"size:200"`
	Notes       string     `json:"notes,omitempty" gorm:"type:text"`
	StartTime   time.Time  `json:"startTime" gorm:"type:timestamptz;not null"`
	EndTime     time.Time  `json:"endTime" gorm:"type:timestamptz;not null;check:chk_events_time_range,end_time > start_time"`
	PeopleCount int        `json:"peopleCount" gorm:"not null;check:people_count > 0"`
	Status      Status     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	// cost snapshot taken when the booking was paid
	VenueCost   float64 `json:"venueCost" gorm:"type:numeric(12,2);not null;default:0"`
	MealCost    float64 `json:"mealCost" gorm:"type:numeric(12,2);not null;default:0"`
	Subtotal    float64 `json:"subtotal" gorm:"type:numeric(12,2);not null;default:0"`
	Tax         float64 `json:"tax" gorm:"type:numeric(12,2);not null;default:0"`
	ServiceFee  float64 `json:"serviceFee" gorm:"type:numeric(12,2);not null;default:0"`
	TotalAmount float64 `json:"totalAmount" gorm:"type:numeric(12,2);not null;default:0"`
	Currency    string  `json:"currency" gorm:"size:3;not null;default:'BDT'"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty" gorm:"size:500"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Venue *venues.Venue `json:"venue,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:RESTRICT"`
	Meal  *meals.Meal   `json:"meal,omitempty" gorm:"foreignKey:MealID;constraint:OnDelete:RESTRICT"`
}

// Slot is the time range a live event occupies
type Slot struct {
	EventID   uuid.UUID `json:"eventId" gorm:"column:id"`
	StartTime time.Time `json:"startTime" gorm:"column:start_time"`
	EndTime   time.Time `json:"endTime" gorm:"column:end_time"`
	Status    Status    `json:"status" gorm:"column:status"`
}

// Filters narrows event listings
type Filters struct {
	Status  string    `form:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	VenueID string    `form:"venueId" validate:"omitempty,uuid"`
	From    time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To      time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}
