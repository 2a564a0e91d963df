package payments

import (
	"errors"
	"testing"
	"time"

	"venuebook/internal/meals"
	"venuebook/internal/shared/apperrors"
	"venuebook/internal/venues"
)

var testCalc = Calculator{TaxRate: 0.15, ServiceFeeRate: 0.05, Currency: "BDT"}

func grandBallroom() *venues.Venue {
	return &venues.Venue{
		Name:         "Grand Ballroom",
		Capacity:     300,
		PricingUnit:  venues.PricingHourly,
		PricePerHour: 250,
		MinimumHours: 4,
		IsActive:     true,
	}
}

func slot(hours float64) (time.Time, time.Time) {
	start := time.Date(2026, 11, 10, 10, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(hours * float64(time.Hour)))
}

func TestCalculateAppliesMinimumHours(t *testing.T) {
	start, end := slot(2)
	b, err := testCalc.Calculate(grandBallroom(), nil, 100, start, end)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	want := CostBreakdown{BilledUnits: 4, VenueCost: 1000, MealCost: 0, Subtotal: 1000, Tax: 150, ServiceFee: 50, Total: 1200}
	if b.BilledUnits != want.BilledUnits || b.VenueCost != want.VenueCost || b.MealCost != want.MealCost ||
		b.Subtotal != want.Subtotal || b.Tax != want.Tax || b.ServiceFee != want.ServiceFee || b.Total != want.Total {
		t.Errorf("breakdown = %+v", b)
	}
	if b.Currency != "BDT" {
		t.Errorf("currency = %q", b.Currency)
	}
}

func TestCalculateRoundsPartialHoursUp(t *testing.T) {
	venue := grandBallroom()
	venue.MinimumHours = 1

	start, end := slot(5.25)
	b, err := testCalc.Calculate(venue, nil, 10, start, end)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.BilledUnits != 6 || b.VenueCost != 1500 {
		t.Errorf("units = %d cost = %v, want 6 and 1500", b.BilledUnits, b.VenueCost)
	}
	if b.DurationHours != 5.25 {
		t.Errorf("duration = %v", b.DurationHours)
	}
}

func TestCalculateDailyVenue(t *testing.T) {
	venue := &venues.Venue{PricingUnit: venues.PricingDaily, PricePerDay: 5000, MinimumHours: 1}

	tests := []struct {
		name     string
		hours    float64
		minHours int
		units    int
	}{
		{"part of a day", 5, 1, 1},
		{"just over a day", 25, 1, 2},
		{"minimum spans two days", 5, 48, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venue.MinimumHours = tt.minHours
			start, end := slot(tt.hours)
			b, err := testCalc.Calculate(venue, nil, 10, start, end)
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if b.BilledUnits != tt.units {
				t.Errorf("units = %d, want %d", b.BilledUnits, tt.units)
			}
			if b.VenueCost != float64(tt.units)*5000 {
				t.Errorf("venue cost = %v", b.VenueCost)
			}
		})
	}
}

func TestCalculateWithMeal(t *testing.T) {
	meal := &meals.Meal{Name: "Kacchi Platter", PricePerPerson: 12.5, MinimumGuests: 20}
	start, end := slot(4)

	b, err := testCalc.Calculate(grandBallroom(), meal, 100, start, end)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.MealCost != 1250 || b.Subtotal != 2250 {
		t.Errorf("meal = %v subtotal = %v", b.MealCost, b.Subtotal)
	}
	if b.Tax != 337.5 || b.ServiceFee != 112.5 || b.Total != 2700 {
		t.Errorf("tax = %v fee = %v total = %v", b.Tax, b.ServiceFee, b.Total)
	}
}

func TestCalculateRejectsTooFewGuestsForMeal(t *testing.T) {
	meal := &meals.Meal{Name: "Buffet", PricePerPerson: 30, MinimumGuests: 50}
	start, end := slot(4)

	_, err := testCalc.Calculate(grandBallroom(), meal, 20, start, end)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestCalculateRoundsToCents(t *testing.T) {
	venue := grandBallroom()
	venue.PricePerHour = 33.4
	venue.MinimumHours = 1
	start, end := slot(1)

	b, err := testCalc.Calculate(venue, nil, 1, start, end)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.Tax != 5.01 || b.ServiceFee != 1.67 || b.Total != 40.08 {
		t.Errorf("tax = %v fee = %v total = %v", b.Tax, b.ServiceFee, b.Total)
	}
}
