package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/database/pgerrors"
	"venuebook/internal/shared/pagination"
)

var listSort = pagination.SortSpec{
	Fields: map[string]string{
		"id":        "id",
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
	},
	DefaultField: "createdAt",
	DefaultOrder: "desc",
}

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
	List(ctx context.Context, q pagination.Query, f Filter) ([]User, int64, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return apperrors.Conflict("an account with this email already exists")
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.Address != nil {
		updates["address"] = *update.Address
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("update user profile: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.NotFound("user")
		}
	}

	return r.FindByID(ctx, id)
}

func (r *repository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("password", hashedPassword)

	if result.Error != nil {
		return fmt.Errorf("update user password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user")
	}
	return nil
}

func (r *repository) List(ctx context.Context, q pagination.Query, f Filter) ([]User, int64, error) {
	query := r.filtered(r.db.WithContext(ctx).Model(&User{}), q, f)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	paged, err := pagination.Apply(query, q, listSort)
	if err != nil {
		return nil, 0, err
	}

	var users []User
	if err := paged.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (r *repository) filtered(db *gorm.DB, q pagination.Query, f Filter) *gorm.DB {
	if q.Search != "" {
		like := pagination.LikePattern(q.Search)
		db = db.Where("(name ILIKE ? OR email ILIKE ?)", like, like)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	return db
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
