package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/pagination"
)

var listSort = pagination.SortSpec{
	Fields: map[string]string{
		"id":          "id",
		"startTime":   "start_time",
		"createdAt":   "created_at",
		"totalAmount": "total_amount",
		"peopleCount": "people_count",
	},
	DefaultField: "startTime",
	DefaultOrder: "desc",
}

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, q pagination.Query, f Filters, ownerID *uuid.UUID) ([]Event, int64, error)
	Transition(ctx context.Context, id uuid.UUID, from, to Status, reason string) error
	Overlapping(ctx context.Context, venueID uuid.UUID, start, end time.Time) ([]Slot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("Meal").
		First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event")
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, q pagination.Query, f Filters, ownerID *uuid.UUID) ([]Event, int64, error) {
	query := ApplyFilters(r.db.WithContext(ctx).Model(&Event{}), q, f, ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	paged, err := pagination.Apply(query, q, listSort)
	if err != nil {
		return nil, 0, err
	}

	var events []Event
	if err := paged.Preload("Venue").Preload("Meal").Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

// ApplyFilters adds the predicates of an event listing. A non-nil ownerID
// restricts the listing to that customer's events.
func ApplyFilters(db *gorm.DB, q pagination.Query, f Filters, ownerID *uuid.UUID) *gorm.DB {
	if ownerID != nil {
		db = db.Where("user_id = ?", *ownerID)
	}
	if q.Search != "" {
		like := pagination.LikePattern(q.Search)
		db = db.Where("(title ILIKE ? OR notes ILIKE ?)", like, like)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.VenueID != "" {
		db = db.Where("venue_id = ?", f.VenueID)
	}
	if !f.From.IsZero() {
		db = db.Where("end_time > ?", f.From)
	}
	if !f.To.IsZero() {
		db = db.Where("start_time < ?", f.To)
	}
	return db
}

func (r *repository) Transition(ctx context.Context, id uuid.UUID, from, to Status, reason string) error {
	return Transition(r.db.WithContext(ctx), id, from, to, reason)
}

func (r *repository) Overlapping(ctx context.Context, venueID uuid.UUID, start, end time.Time) ([]Slot, error) {
	return Overlapping(r.db.WithContext(ctx), venueID, start, end)
}

// Transition moves an event from one status to another. The update only
// applies while the row still has status from, so concurrent transitions
// cannot both win.
func Transition(db *gorm.DB, id uuid.UUID, from, to Status, reason string) error {
	if !from.CanTransitionTo(to) {
		return apperrors.BusinessRule(fmt.Sprintf("cannot change event status from %s to %s", from, to))
	}

	updates := map[string]interface{}{"status": to}
	if to == StatusCancelled {
		updates["cancelled_at"] = time.Now().UTC()
		updates["cancellation_reason"] = reason
	}

	result := db.Model(&Event{}).Where("id = ? AND status = ?", id, from).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update event status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Conflict("event status changed concurrently, reload and retry")
	}
	return nil
}

// Overlapping returns the live events at a venue that intersect [start, end)
func Overlapping(db *gorm.DB, venueID uuid.UUID, start, end time.Time) ([]Slot, error) {
	var slots []Slot
	err := db.Model(&Event{}).
		Select("id, start_time, end_time, status").
		Where("venue_id = ? AND status IN ?", venueID, LiveStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Order("start_time").
		Scan(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("find overlapping events: %w", err)
	}
	return slots, nil
}
