package payments

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"venuebook/internal/shared/database/dbtest"
	"venuebook/internal/shared/pagination"
)

func TestApplyFiltersSQL(t *testing.T) {
	db := dbtest.DryRun(t)
	owner := uuid.MustParse("0b6f0c3e-3a51-4f57-8a8e-5b4f1b2a9c01")
	flagged := true

	sql := dbtest.ToSQL(db, func(tx *gorm.DB) *gorm.DB {
		var out []Payment
		f := Filters{Status: "success", Method: "bkash", NeedsReconciliation: &flagged}
		return ApplyFilters(tx.Model(&Payment{}), pagination.Query{Search: "BKASH_"}, f, &owner).Find(&out)
	})

	for _, want := range []string{
		`user_id = '0b6f0c3e-3a51-4f57-8a8e-5b4f1b2a9c01'`,
		`transaction_id ILIKE '%BKASH\_%'`,
		`status = 'success'`,
		`method = 'bkash'`,
		`needs_reconciliation = true`,
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("SQL missing %q:\n%s", want, sql)
		}
	}
}

func TestRefundUpdateIsConditional(t *testing.T) {
	db := dbtest.DryRun(t)
	id := uuid.MustParse("6f1c2a58-6c2e-4b0a-9d55-0d5f2b1e8a10")

	sql := dbtest.ToSQL(db, func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&Payment{}).
			Where("id = ? AND status = ?", id, StatusSuccess).
			Updates(map[string]interface{}{"status": StatusRefunded})
	})

	if !strings.Contains(sql, `status = 'success'`) || !strings.Contains(sql, `"status"='refunded'`) {
		t.Errorf("unexpected SQL:\n%s", sql)
	}
}
