// Package dbtest renders GORM queries against the postgres dialect without a
// live database, so repository query builders can be asserted in unit tests.
package dbtest

import (
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const dryRunDSN = "host=localhost user=venuebook password=venuebook dbname=venuebook port=5432 sslmode=disable"

// DryRun opens a postgres-dialect *gorm.DB that never touches the network.
func DryRun(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: dryRunDSN}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

// ToSQL returns the interpolated SQL that build would execute.
func ToSQL(db *gorm.DB, build func(tx *gorm.DB) *gorm.DB) string {
	return db.ToSQL(build)
}
