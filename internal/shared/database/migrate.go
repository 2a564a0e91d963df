package database

import (
	"fmt"

	"gorm.io/gorm"

	"venuebook/internal/events"
	"venuebook/internal/meals"
	"venuebook/internal/organizers"
	"venuebook/internal/payments"
	"venuebook/internal/users"
	"venuebook/internal/venues"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}

	return db.AutoMigrate(
		&users.User{},
		&organizers.Organizer{},
		&venues.Venue{},
		&meals.Meal{},
		&events.Event{},
		&payments.Payment{},
	)
}
