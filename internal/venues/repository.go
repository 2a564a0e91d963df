package venues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/database/pgerrors"
	"venuebook/internal/shared/pagination"
)

var listSort = pagination.SortSpec{
	Fields: map[string]string{
		"id":           "id",
		"name":         "name",
		"city":         "city",
		"capacity":     "capacity",
		"pricePerHour": "price_per_hour",
		"pricePerDay":  "price_per_day",
		"createdAt":    "created_at",
	},
	DefaultField: "createdAt",
	DefaultOrder: "desc",
}

const effectivePrice = "(CASE WHEN pricing_unit = 'daily' THEN price_per_day ELSE price_per_hour END)"

type Repository interface {
	Create(ctx context.Context, venue *Venue) error
	FindByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	List(ctx context.Context, q pagination.Query, f Filters) ([]Venue, int64, error)
	Save(ctx context.Context, venue *Venue) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasEvents(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, venue *Venue) error {
	if err := r.db.WithContext(ctx).Create(venue).Error; err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	if err := r.db.WithContext(ctx).First(&venue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("venue")
		}
		return nil, fmt.Errorf("find venue: %w", err)
	}
	return &venue, nil
}

func (r *repository) List(ctx context.Context, q pagination.Query, f Filters) ([]Venue, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := ApplyFilters(db.Model(&Venue{}), q, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count venues: %w", err)
	}

	paged, err := pagination.Apply(ApplyFilters(db.Model(&Venue{}), q, f), q, listSort)
	if err != nil {
		return nil, 0, err
	}

	var venues []Venue
	if err := paged.Find(&venues).Error; err != nil {
		return nil, 0, fmt.Errorf("list venues: %w", err)
	}
	return venues, total, nil
}

// ApplyFilters adds the search and filter predicates of a venue listing
func ApplyFilters(db *gorm.DB, q pagination.Query, f Filters) *gorm.DB {
	if q.Search != "" {
		like := pagination.LikePattern(q.Search)
		db = db.Where("(name ILIKE ? OR description ILIKE ?)", like, like)
	}
	if f.VenueType != "" {
		db = db.Where("venue_type = ?", f.VenueType)
	}
	if city := strings.TrimSpace(f.City); city != "" {
		db = db.Where("LOWER(city) = LOWER(?)", city)
	}
	if f.MinCapacity != nil {
		db = db.Where("capacity >= ?", *f.MinCapacity)
	}
	if f.MaxCapacity != nil {
		db = db.Where("capacity <= ?", *f.MaxCapacity)
	}
	if f.MinPrice != nil {
		db = db.Where(effectivePrice+" >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where(effectivePrice+" <= ?", *f.MaxPrice)
	}
	if facility := strings.TrimSpace(f.Facility); facility != "" {
		contains, _ := json.Marshal([]string{facility})
		db = db.Where("facilities @> ?::jsonb", string(contains))
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if f.OrganizerID != "" {
		db = db.Where("organizer_id = ?", f.OrganizerID)
	}
	return db
}

func (r *repository) Save(ctx context.Context, venue *Venue) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(venue).Error; err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Venue{}, "id = ?", id)
	if result.Error != nil {
		if pgerrors.IsForeignKeyViolation(result.Error) {
			return apperrors.Conflict("venue has bookings; deactivate it instead")
		}
		return fmt.Errorf("delete venue: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("venue")
	}
	return nil
}

func (r *repository) HasEvents(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table("events").Where("venue_id = ?", id).Limit(1).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count venue events: %w", err)
	}
	return n > 0, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Venue{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count venues: %w", err)
	}
	return n, nil
}
