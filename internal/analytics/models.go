package analytics

import (
	"time"

	"github.com/google/uuid"
)

// Dashboard is the admin overview of the whole platform
type Dashboard struct {
	Users         int64 `json:"users"`
	Organizers    int64 `json:"organizers"`
	Venues        int64 `json:"venues"`
	ActiveVenues  int64 `json:"activeVenues"`
	Meals         int64 `json:"meals"`
	UpcomingTotal int64 `json:"upcomingEvents"`

	EventsByStatus   map[string]int64 `json:"eventsByStatus"`
	PaymentsByStatus map[string]int64 `json:"paymentsByStatus"`

	// gross counts every captured payment, refunded ones included
	GrossRevenue          float64 `json:"grossRevenue"`
	RefundedTotal         float64 `json:"refundedTotal"`
	NetRevenue            float64 `json:"netRevenue"`
	PendingReconciliation int64   `json:"pendingReconciliation"`

	GeneratedAt time.Time `json:"generatedAt"`
}

type statusCount struct {
	Status string
	Count  int64
}

type revenueTotals struct {
	Gross    float64
	Refunded float64
}

// MonthlyRevenue is one month of the revenue series, keyed YYYY-MM
type MonthlyRevenue struct {
	Month    string  `json:"month"`
	Gross    float64 `json:"gross"`
	Refunded float64 `json:"refunded"`
	Net      float64 `json:"net"`
	Payments int64   `json:"payments"`
}

type MethodRevenue struct {
	Method   string  `json:"method"`
	Gross    float64 `json:"gross"`
	Payments int64   `json:"payments"`
}

type RevenueReport struct {
	Months   int              `json:"months"`
	From     time.Time        `json:"from"`
	Series   []MonthlyRevenue `json:"series"`
	ByMethod []MethodRevenue  `json:"byMethod"`
	Total    float64          `json:"total"`
}

// VenuePerformance ranks a venue by its confirmed bookings
type VenuePerformance struct {
	VenueID       uuid.UUID `json:"venueId"`
	Name          string    `json:"name"`
	City          string    `json:"city"`
	Bookings      int64     `json:"bookings"`
	Cancellations int64     `json:"cancellations"`
	Revenue       float64   `json:"revenue"`
	AvgPeople     float64   `json:"avgPeople"`
}

// UserQuery filters the admin customer listing
type UserQuery struct {
	IsActive *bool `form:"isActive"`
}

type RevenueQuery struct {
	Months int `form:"months" validate:"omitempty,min=1,max=24"`
}

type TopVenuesQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=50"`
}
