package meals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/database/pgerrors"
	"venuebook/internal/shared/pagination"
)

var listSort = pagination.SortSpec{
	Fields: map[string]string{
		"id":             "id",
		"name":           "name",
		"pricePerPerson": "price_per_person",
		"minimumGuests":  "minimum_guests",
		"createdAt":      "created_at",
	},
	DefaultField: "createdAt",
	DefaultOrder: "desc",
}

type Repository interface {
	Create(ctx context.Context, meal *Meal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Meal, error)
	List(ctx context.Context, q pagination.Query, f Filters) ([]Meal, int64, error)
	Save(ctx context.Context, meal *Meal) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, meal *Meal) error {
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Meal, error) {
	var meal Meal
	if err := r.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("meal")
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}
	return &meal, nil
}

func (r *repository) List(ctx context.Context, q pagination.Query, f Filters) ([]Meal, int64, error) {
	query := ApplyFilters(r.db.WithContext(ctx).Model(&Meal{}), q, f)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count meals: %w", err)
	}

	paged, err := pagination.Apply(query, q, listSort)
	if err != nil {
		return nil, 0, err
	}

	var meals []Meal
	if err := paged.Find(&meals).Error; err != nil {
		return nil, 0, fmt.Errorf("list meals: %w", err)
	}
	return meals, total, nil
}

// ApplyFilters adds the search and filter predicates of a meal listing
func ApplyFilters(db *gorm.DB, q pagination.Query, f Filters) *gorm.DB {
	if q.Search != "" {
		like := pagination.LikePattern(q.Search)
		db = db.Where("(name ILIKE ? OR description ILIKE ?)", like, like)
	}
	if f.MealType != "" {
		db = db.Where("meal_type = ?", f.MealType)
	}
	if f.ServingStyle != "" {
		db = db.Where("serving_style = ?", f.ServingStyle)
	}
	if f.MinPrice != nil {
		db = db.Where("price_per_person >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price_per_person <= ?", *f.MaxPrice)
	}
	if tag := strings.ToLower(strings.TrimSpace(f.DietaryTag)); tag != "" {
		contains, _ := json.Marshal([]string{tag})
		db = db.Where("dietary_tags @> ?::jsonb", string(contains))
	}
	if f.IsAvailable != nil {
		db = db.Where("is_available = ?", *f.IsAvailable)
	}
	return db
}

func (r *repository) Save(ctx context.Context, meal *Meal) error {
	if err := r.db.WithContext(ctx).Save(meal).Error; err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Meal{}, "id = ?", id)
	if result.Error != nil {
		if pgerrors.IsForeignKeyViolation(result.Error) {
			return apperrors.Conflict("meal is used by bookings; mark it unavailable instead")
		}
		return fmt.Errorf("delete meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("meal")
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Meal{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count meals: %w", err)
	}
	return n, nil
}
