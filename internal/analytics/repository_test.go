package analytics

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"venuebook/internal/shared/database/dbtest"
)

func TestStatusCountSQL(t *testing.T) {
	db := dbtest.DryRun(t)

	sql := dbtest.ToSQL(db, func(tx *gorm.DB) *gorm.DB {
		var rows []statusCount
		return tx.Table("events").Select("status, COUNT(*) AS count").Group("status").Scan(&rows)
	})

	for _, want := range []string{`SELECT status, COUNT(*) AS count`, `FROM "events"`, `GROUP BY`} {
		if !strings.Contains(sql, want) {
			t.Errorf("SQL missing %q:\n%s", want, sql)
		}
	}
}
