package venues

import (
	"testing"
	"time"
)

func TestCheckOperatingHours(t *testing.T) {
	venue := &Venue{OperatingHours: OperatingHours{
		"monday": {Open: "09:00", Close: "22:00"},
		"sunday": {Closed: true},
	}}
	// 2026-03-16 is a Monday
	monday := func(clock string) time.Time {
		ts, err := time.Parse(time.RFC3339, "2026-03-16T"+clock+":00+06:00")
		if err != nil {
			t.Fatal(err)
		}
		return ts
	}

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"inside window", monday("10:00"), monday("14:00"), false},
		{"exactly open to close", monday("09:00"), monday("22:00"), false},
		{"starts before open", monday("08:00"), monday("10:00"), true},
		{"ends after close", monday("20:00"), monday("23:00"), true},
		{"closed day", monday("10:00").AddDate(0, 0, 6), monday("12:00").AddDate(0, 0, 6), true},
		{"day without hours", monday("01:00").AddDate(0, 0, 1), monday("03:00").AddDate(0, 0, 1), false},
		{"multi-day slot", monday("10:00"), monday("10:00").AddDate(0, 0, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := venue.CheckOperatingHours(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckOperatingHours() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRate(t *testing.T) {
	hourly := &Venue{PricingUnit: PricingHourly, PricePerHour: 250, PricePerDay: 1800}
	daily := &Venue{PricingUnit: PricingDaily, PricePerHour: 250, PricePerDay: 1800}
	if hourly.Rate() != 250 || daily.Rate() != 1800 {
		t.Fatalf("Rate() = %v / %v", hourly.Rate(), daily.Rate())
	}
}
