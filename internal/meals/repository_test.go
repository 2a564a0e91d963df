package meals

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"venuebook/internal/shared/database/dbtest"
	"venuebook/internal/shared/pagination"
)

func TestApplyFiltersSQL(t *testing.T) {
	db := dbtest.DryRun(t)
	maxPrice := 20.0

	sql := dbtest.ToSQL(db, func(tx *gorm.DB) *gorm.DB {
		var out []Meal
		f := Filters{MealType: "veg", MaxPrice: &maxPrice, DietaryTag: "Vegan"}
		return ApplyFilters(tx.Model(&Meal{}), pagination.Query{}, f).Find(&out)
	})

	for _, want := range []string{
		`FROM "meals"`,
		`meal_type = 'veg'`,
		`price_per_person <= 20`,
		`dietary_tags @> `,
		`vegan`,
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("SQL missing %q:\n%s", want, sql)
		}
	}
}
