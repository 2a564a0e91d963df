package meals

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/middleware"
	"venuebook/internal/shared/pagination"
	"venuebook/internal/shared/utils/response"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, actor *middleware.Principal, req *CreateMealRequest) (*Meal, error)
	GetByID(ctx context.Context, id string, viewer *middleware.Principal) (*Meal, error)
	List(ctx context.Context, q pagination.Query, f Filters, viewer *middleware.Principal) (*MealList, error)
	Update(ctx context.Context, actor *middleware.Principal, id string, req *UpdateMealRequest) (*Meal, error)
	Delete(ctx context.Context, actor *middleware.Principal, id string) error
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   log,
	}
}

func (s *service) Create(ctx context.Context, actor *middleware.Principal, req *CreateMealRequest) (*Meal, error) {
	organizerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid account")
	}

	meal := &Meal{
		OrganizerID:    organizerID,
		Name:           req.Name,
		Description:    req.Description,
		MealType:       req.MealType,
		ServingStyle:   req.ServingStyle,
		Cuisine:        req.Cuisine,
		PricePerPerson: req.PricePerPerson,
		MinimumGuests:  req.MinimumGuests,
		DietaryTags:    normalizeTags(req.DietaryTags),
		IsAvailable:    true,
	}
	if meal.MinimumGuests == 0 {
		meal.MinimumGuests = 1
	}

	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return meal, nil
}

func (s *service) GetByID(ctx context.Context, id string, viewer *middleware.Principal) (*Meal, error) {
	mealID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Field("id", "id must be a valid UUID")
	}

	var meal Meal
	err = s.cache.GetOrSet(ctx, constants.BuildMealDetailKey(mealID.String()), constants.TTL_MEAL_DETAIL, func() (interface{}, error) {
		return s.repo.FindByID(ctx, mealID)
	}, &meal)
	if err != nil {
		return nil, err
	}

	if !meal.IsAvailable && !isStaff(viewer) {
		return nil, apperrors.NotFound("meal")
	}
	return &meal, nil
}

func (s *service) List(ctx context.Context, q pagination.Query, f Filters, viewer *middleware.Principal) (*MealList, error) {
	q.Normalize()
	if !isStaff(viewer) {
		available := true
		f.IsAvailable = &available
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, apperrors.Field("minPrice", "minPrice must not exceed maxPrice")
	}

	var page MealList
	err := s.cache.GetOrSet(ctx, constants.BuildMealsListKey(listDigest(q, f)), constants.TTL_MEALS_LIST, func() (interface{}, error) {
		items, total, err := s.repo.List(ctx, q, f)
		if err != nil {
			return nil, err
		}
		return response.NewPage(items, q.Page, q.Limit, total), nil
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *service) Update(ctx context.Context, actor *middleware.Principal, id string, req *UpdateMealRequest) (*Meal, error) {
	meal, err := s.ownedMeal(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		meal.Name = *req.Name
	}
	if req.Description != nil {
		meal.Description = *req.Description
	}
	if req.MealType != nil {
		meal.MealType = *req.MealType
	}
	if req.ServingStyle != nil {
		meal.ServingStyle = *req.ServingStyle
	}
	if req.Cuisine != nil {
		meal.Cuisine = *req.Cuisine
	}
	if req.PricePerPerson != nil {
		meal.PricePerPerson = *req.PricePerPerson
	}
	if req.MinimumGuests != nil {
		meal.MinimumGuests = *req.MinimumGuests
	}
	if req.DietaryTags != nil {
		meal.DietaryTags = normalizeTags(*req.DietaryTags)
	}
	if req.IsAvailable != nil {
		meal.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Save(ctx, meal); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return meal, nil
}

func (s *service) Delete(ctx context.Context, actor *middleware.Principal, id string) error {
	meal, err := s.ownedMeal(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, meal.ID); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) ownedMeal(ctx context.Context, actor *middleware.Principal, id string) (*Meal, error) {
	mealID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Field("id", "id must be a valid UUID")
	}

	meal, err := s.repo.FindByID(ctx, mealID)
	if err != nil {
		return nil, err
	}
	if actor.Role != constants.RoleAdmin && meal.OrganizerID.String() != actor.UserID {
		return nil, apperrors.Forbidden("you can only manage your own meals")
	}
	return meal, nil
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_MEALS); err != nil {
		s.log.Warn("failed to invalidate meal cache", slog.Any("error", err))
	}
}

func isStaff(p *middleware.Principal) bool {
	return p != nil && constants.IsStaff(p.Role)
}

func listDigest(q pagination.Query, f Filters) string {
	raw, _ := json.Marshal(struct {
		Q pagination.Query
		F Filters
	}{q, f})
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:])
}

// normalizeTags lowercases and de-duplicates dietary tags
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
