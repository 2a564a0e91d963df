package venues

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"venuebook/internal/shared/database/dbtest"
	"venuebook/internal/shared/pagination"
)

func TestApplyFiltersSQL(t *testing.T) {
	db := dbtest.DryRun(t)
	minCap := 100
	active := true

	sql := dbtest.ToSQL(db, func(tx *gorm.DB) *gorm.DB {
		q := pagination.Query{Search: "hall"}
		f := Filters{City: " Dhaka ", MinCapacity: &minCap, Facility: "parking", IsActive: &active}
		var out []Venue
		return ApplyFilters(tx.Model(&Venue{}), q, f).Find(&out)
	})

	for _, want := range []string{
		`FROM "venues"`,
		`(name ILIKE '%hall%' OR description ILIKE '%hall%')`,
		`LOWER(city) = LOWER('Dhaka')`,
		`capacity >= 100`,
		`facilities @> `,
		`::jsonb`,
		`is_active = true`,
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("SQL missing %q:\n%s", want, sql)
		}
	}
}

func TestApplyFiltersPriceUsesPricingUnit(t *testing.T) {
	db := dbtest.DryRun(t)
	maxPrice := 500.0

	sql := dbtest.ToSQL(db, func(tx *gorm.DB) *gorm.DB {
		var out []Venue
		return ApplyFilters(tx.Model(&Venue{}), pagination.Query{}, Filters{MaxPrice: &maxPrice}).Find(&out)
	})

	if !strings.Contains(sql, effectivePrice+" <= 500") {
		t.Errorf("price filter should compare the effective rate:\n%s", sql)
	}
}

func TestListCountIgnoresPaging(t *testing.T) {
	q := pagination.Query{Page: 2, Limit: 10}
	f := Filters{City: "Dhaka"}

	countSQL := dbtest.ToSQL(dbtest.DryRun(t), func(tx *gorm.DB) *gorm.DB {
		var total int64
		return ApplyFilters(tx.Model(&Venue{}), q, f).Count(&total)
	})
	pageSQL := dbtest.ToSQL(dbtest.DryRun(t), func(tx *gorm.DB) *gorm.DB {
		paged, err := pagination.Apply(ApplyFilters(tx.Model(&Venue{}), q, f), q, listSort)
		if err != nil {
			t.Fatalf("apply paging: %v", err)
		}
		var out []Venue
		return paged.Find(&out)
	})

	for name, sql := range map[string]string{"count": countSQL, "page": pageSQL} {
		if !strings.Contains(sql, `LOWER(city) = LOWER('Dhaka')`) {
			t.Errorf("%s query lost the city filter:\n%s", name, sql)
		}
	}
	if !strings.Contains(countSQL, "count(*)") {
		t.Errorf("count query does not count:\n%s", countSQL)
	}
	if strings.Contains(countSQL, "LIMIT") || strings.Contains(countSQL, "OFFSET") {
		t.Errorf("total must cover every match, got paged count:\n%s", countSQL)
	}
	if !strings.Contains(pageSQL, "LIMIT 10 OFFSET 10") {
		t.Errorf("page 2 should skip the first ten rows:\n%s", pageSQL)
	}
}
