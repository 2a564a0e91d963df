package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints and partial indexes AutoMigrate
// cannot express. Every statement is idempotent.
func MigrateConstraints(db *gorm.DB) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,

		// Two live events may never overlap on the same venue
		`DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'events_no_overlap') THEN
				ALTER TABLE events ADD CONSTRAINT events_no_overlap
				EXCLUDE USING gist (venue_id WITH =, tstzrange(start_time, end_time) WITH &&)
				WHERE (status IN ('pending', 'confirmed'));
			END IF;
		END $$`,

		// Overlap lookups only ever consider live events
		`CREATE INDEX IF NOT EXISTS idx_events_venue_live_slot
		ON events (venue_id, start_time, end_time)
		WHERE status IN ('pending', 'confirmed')`,

		`CREATE INDEX IF NOT EXISTS idx_payments_needs_reconciliation
		ON payments (created_at)
		WHERE needs_reconciliation`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
