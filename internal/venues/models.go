package venues

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PricingUnit string

const (
	PricingHourly PricingUnit = "hourly"
	PricingDaily  PricingUnit = "daily"
)

type VenueType string

const (
	VenueTypeBanquetHall     VenueType = "banquet_hall"
	VenueTypeConferenceHall  VenueType = "conference_hall"
	VenueTypeOutdoor         VenueType = "outdoor"
	VenueTypeRooftop         VenueType = "rooftop"
	VenueTypeRestaurant      VenueType = "restaurant"
	VenueTypeCommunityCenter VenueType = "community_center"
)

// DayHours is one weekday's opening window in "HH:MM" 24h format
type DayHours struct {
	Open   string `json:"open,omitempty" validate:"omitempty,datetime=15:04"`
	Close  string `json:"close,omitempty" validate:"omitempty,datetime=15:04"`
	Closed bool   `json:"closed"`
}

// OperatingHours maps a lowercase weekday name to its hours. Days without an
// entry are unrestricted.
type OperatingHours map[string]DayHours

type Venue struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OrganizerID    uuid.UUID      `json:"organizerId" gorm:"type:uuid;not null;index"`
	Name           string         `json:"name" gorm:"not null;size:200"`
	Description    string         `json:"description" gorm:"type:text"`
	VenueType      VenueType      `json:"venueType" gorm:"type:varchar(30);not null;index"`
	Address        string         `json:"address" gorm:"not null;size:500"`
	City           string         `json:"city" gorm:"not null;size:100;index"`
	Capacity       int            `json:"capacity" gorm:"not null;check:capacity > 0"`
	PricingUnit    PricingUnit    `json:"pricingUnit" gorm:"type:varchar(10);not null;default:'hourly'"`
	PricePerHour   float64        `json:"pricePerHour" gorm:"type:numeric(12,2);not null;default:0;check:price_per_hour >= 0"`
	PricePerDay    float64        `json:"pricePerDay" gorm:"type:numeric(12,2);not null;default:0;check:price_per_day >= 0"`
	MinimumHours   int            `json:"minimumHours" gorm:"not null;default:1;check:minimum_hours >= 1"`
	Facilities     []string       `json:"facilities" gorm:"type:jsonb;serializer:json"`
	OperatingHours OperatingHours `json:"operatingHours,omitempty" gorm:"type:jsonb;serializer:json"`
	Images         []string       `json:"images" gorm:"type:jsonb;serializer:json"`
	IsActive       bool           `json:"isActive" gorm:"not null;default:true;index"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Rate returns the price per billing unit
func (v *Venue) Rate() float64 {
	if v.PricingUnit == PricingDaily {
		return v.PricePerDay
	}
	return v.PricePerHour
}

// CheckOperatingHours rejects a slot that falls outside the venue's opening
// window. Only slots starting and ending on the same calendar day are checked
// against open/close times; a closed weekday rejects any slot starting on it.
func (v *Venue) CheckOperatingHours(start, end time.Time) error {
	if len(v.OperatingHours) == 0 {
		return nil
	}

	day := strings.ToLower(start.Weekday().String())
	hours, ok := v.OperatingHours[day]
	if !ok {
		return nil
	}
	if hours.Closed {
		return fmt.Errorf("venue is closed on %s", day)
	}

	sameDay := start.Year() == end.Year() && start.YearDay() == end.YearDay()
	if !sameDay || hours.Open == "" || hours.Close == "" {
		return nil
	}

	startClock := start.Format("15:04")
	endClock := end.Format("15:04")
	if startClock < hours.Open || endClock > hours.Close {
		return fmt.Errorf("venue operates %s-%s on %s", hours.Open, hours.Close, day)
	}
	return nil
}

// Filters narrows venue listings
type Filters struct {
	VenueType   string   `form:"venueType" validate:"omitempty,oneof=banquet_hall conference_hall outdoor rooftop restaurant community_center"`
	City        string   `form:"city" validate:"omitempty,max=100"`
	MinCapacity *int     `form:"minCapacity" validate:"omitempty,min=1"`
	MaxCapacity *int     `form:"maxCapacity" validate:"omitempty,min=1"`
	MinPrice    *float64 `form:"minPrice" validate:"omitempty,min=0"`
	MaxPrice    *float64 `form:"maxPrice" validate:"omitempty,min=0"`
	Facility    string   `form:"facility" validate:"omitempty,max=100"`
	IsActive    *bool    `form:"isActive"`
	OrganizerID string   `form:"organizerId" validate:"omitempty,uuid"`
}
