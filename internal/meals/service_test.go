package meals

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/middleware"
	"venuebook/internal/shared/pagination"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"
)

type fakeRepo struct {
	meals map[uuid.UUID]*Meal
}

func (f *fakeRepo) Create(_ context.Context, m *Meal) error {
	m.ID = uuid.New()
	cp := *m
	f.meals[m.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*Meal, error) {
	m, ok := f.meals[id]
	if !ok {
		return nil, apperrors.NotFound("meal")
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, _ pagination.Query, filters Filters) ([]Meal, int64, error) {
	var out []Meal
	for _, m := range f.meals {
		if filters.IsAvailable != nil && m.IsAvailable != *filters.IsAvailable {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Save(_ context.Context, m *Meal) error {
	cp := *m
	f.meals[m.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.meals, id)
	return nil
}

func (f *fakeRepo) Count(context.Context) (int64, error) { return int64(len(f.meals)), nil }

func newTestService() Service {
	return NewService(&fakeRepo{meals: map[uuid.UUID]*Meal{}}, cache.NewService(nil), logger.Discard())
}

func staff(role string) *middleware.Principal {
	return &middleware.Principal{UserID: uuid.NewString(), Role: role}
}

func TestCreateNormalizesTags(t *testing.T) {
	svc := newTestService()
	meal, err := svc.Create(context.Background(), staff(constants.RoleOrganizer), &CreateMealRequest{
		Name:           "Kacchi Biryani Platter",
		MealType:       MealTypeNonVeg,
		ServingStyle:   ServingBuffet,
		PricePerPerson: 12.5,
		DietaryTags:    []string{" Halal", "halal", "Spicy", ""},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if want := []string{"halal", "spicy"}; !reflect.DeepEqual(meal.DietaryTags, want) {
		t.Errorf("tags = %v, want %v", meal.DietaryTags, want)
	}
	if meal.MinimumGuests != 1 {
		t.Errorf("minimumGuests default = %d", meal.MinimumGuests)
	}
}

func TestUnavailableMealHiddenFromCustomers(t *testing.T) {
	svc := newTestService()
	owner := staff(constants.RoleOrganizer)
	meal, _ := svc.Create(context.Background(), owner, &CreateMealRequest{
		Name: "Veg Thali", MealType: MealTypeVeg, ServingStyle: ServingPlated, PricePerPerson: 8,
	})

	off := false
	if _, err := svc.Update(context.Background(), owner, meal.ID.String(), &UpdateMealRequest{IsAvailable: &off}); err != nil {
		t.Fatal(err)
	}

	customer := staff(constants.RoleCustomer)
	if _, err := svc.GetByID(context.Background(), meal.ID.String(), customer); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	page, err := svc.List(context.Background(), pagination.Query{}, Filters{}, customer)
	if err != nil {
		t.Fatal(err)
	}
	if page.Pagination.Total != 0 {
		t.Errorf("customer listing total = %d, want 0", page.Pagination.Total)
	}
}

func TestForeignOrganizerCannotDelete(t *testing.T) {
	svc := newTestService()
	meal, _ := svc.Create(context.Background(), staff(constants.RoleOrganizer), &CreateMealRequest{
		Name: "Cocktail Bites", MealType: MealTypeBuffet, ServingStyle: ServingCocktail, PricePerPerson: 5,
	})

	if err := svc.Delete(context.Background(), staff(constants.RoleOrganizer), meal.ID.String()); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), staff(constants.RoleAdmin), meal.ID.String()); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
