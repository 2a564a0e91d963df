package organizers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/database/pgerrors"
)

type Repository interface {
	Create(ctx context.Context, organizer *Organizer) error
	FindByEmail(ctx context.Context, email string) (*Organizer, error)
	FindByID(ctx context.Context, id string) (*Organizer, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, organizer *Organizer) error {
	organizer.Email = strings.ToLower(strings.TrimSpace(organizer.Email))
	if err := r.db.WithContext(ctx).Create(organizer).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return apperrors.Conflict("an account with this email already exists")
		}
		return fmt.Errorf("create organizer: %w", err)
	}
	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Organizer, error) {
	var organizer Organizer
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&organizer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("organizer")
		}
		return nil, fmt.Errorf("find organizer by email: %w", err)
	}
	return &organizer, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Organizer, error) {
	var organizer Organizer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&organizer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("organizer")
		}
		return nil, fmt.Errorf("find organizer: %w", err)
	}
	return &organizer, nil
}

func (r *repository) CountByRole(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&Organizer{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count organizers: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}
