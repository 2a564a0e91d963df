package payments

import (
	"fmt"
	"math"
	"time"

	"venuebook/internal/meals"
	"venuebook/internal/shared/apperrors"
	"venuebook/internal/venues"
)

// CostBreakdown is the itemized bill of a booking
type CostBreakdown struct {
	PricingUnit    venues.PricingUnit `json:"pricingUnit"`
	DurationHours  float64            `json:"durationHours"`
	BilledUnits    int                `json:"billedUnits"`
	VenueRate      float64            `json:"venueRate"`
	VenueCost      float64            `json:"venueCost"`
	PeopleCount    int                `json:"peopleCount"`
	MealPerPerson  float64            `json:"mealPricePerPerson"`
	MealCost       float64            `json:"mealCost"`
	Subtotal       float64            `json:"subtotal"`
	TaxRate        float64            `json:"taxRate"`
	Tax            float64            `json:"tax"`
	ServiceFeeRate float64            `json:"serviceFeeRate"`
	ServiceFee     float64            `json:"serviceFee"`
	Total          float64            `json:"total"`
	Currency       string             `json:"currency"`
}

// Calculator prices bookings with fixed tax and service fee rates
type Calculator struct {
	TaxRate        float64
	ServiceFeeRate float64
	Currency       string
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// ceilUnits counts started units of size unit in d
func ceilUnits(d, unit time.Duration) int {
	n := int(d / unit)
	if d%unit != 0 {
		n++
	}
	return n
}

// billedUnits applies the venue's minimum booking duration
func billedUnits(venue *venues.Venue, d time.Duration) int {
	minHours := venue.MinimumHours
	if minHours < 1 {
		minHours = 1
	}

	if venue.PricingUnit == venues.PricingDaily {
		days := ceilUnits(d, 24*time.Hour)
		minDays := ceilUnits(time.Duration(minHours)*time.Hour, 24*time.Hour)
		return max(days, minDays, 1)
	}

	return max(ceilUnits(d, time.Hour), minHours)
}

// Calculate prices a slot at venue for people guests, with an optional meal
func (c Calculator) Calculate(venue *venues.Venue, meal *meals.Meal, people int, start, end time.Time) (*CostBreakdown, error) {
	if !end.After(start) {
		return nil, apperrors.Field("endTime", "endTime must be after startTime")
	}
	if people < 1 {
		return nil, apperrors.Field("peopleCount", "peopleCount must be at least 1")
	}

	d := end.Sub(start)
	units := billedUnits(venue, d)
	rate := venue.Rate()

	b := &CostBreakdown{
		PricingUnit:    venue.PricingUnit,
		DurationHours:  roundCents(d.Hours()),
		BilledUnits:    units,
		VenueRate:      rate,
		VenueCost:      roundCents(float64(units) * rate),
		PeopleCount:    people,
		TaxRate:        c.TaxRate,
		ServiceFeeRate: c.ServiceFeeRate,
		Currency:       c.Currency,
	}

	if meal != nil {
		if people < meal.MinimumGuests {
			return nil, apperrors.Field("peopleCount",
				fmt.Sprintf("%s requires at least %d guests", meal.Name, meal.MinimumGuests))
		}
		b.MealPerPerson = meal.PricePerPerson
		b.MealCost = roundCents(meal.PricePerPerson * float64(people))
	}

	b.Subtotal = roundCents(b.VenueCost + b.MealCost)
	b.Tax = roundCents(b.Subtotal * c.TaxRate)
	b.ServiceFee = roundCents(b.Subtotal * c.ServiceFeeRate)
	b.Total = roundCents(b.Subtotal + b.Tax + b.ServiceFee)
	return b, nil
}
