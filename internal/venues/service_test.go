package venues

import (
	"context"
	"errors"
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
	venues    map[uuid.UUID]*Venue
	withEvent map[uuid.UUID]bool
	lastList  Filters
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{venues: map[uuid.UUID]*Venue{}, withEvent: map[uuid.UUID]bool{}}
}

func (f *fakeRepo) Create(_ context.Context, v *Venue) error {
	v.ID = uuid.New()
	cp := *v
	f.venues[v.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, apperrors.NotFound("venue")
	}
	cp := *v
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, _ pagination.Query, filters Filters) ([]Venue, int64, error) {
	f.lastList = filters
	var out []Venue
	for _, v := range f.venues {
		if filters.IsActive != nil && v.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Save(_ context.Context, v *Venue) error {
	cp := *v
	f.venues[v.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.venues, id)
	return nil
}

func (f *fakeRepo) HasEvents(_ context.Context, id uuid.UUID) (bool, error) {
	return f.withEvent[id], nil
}

func (f *fakeRepo) Count(context.Context) (int64, error) {
	return int64(len(f.venues)), nil
}

func newTestService() (*service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo, cache.NewService(nil), logger.Discard()).(*service)
	return svc, repo
}

func organizer() *middleware.Principal {
	return &middleware.Principal{UserID: uuid.NewString(), Email: "org@example.com", Role: constants.RoleOrganizer}
}

func validCreate() *CreateVenueRequest {
	return &CreateVenueRequest{
		Name:         "Grand Ballroom",
		VenueType:    VenueTypeBanquetHall,
		Address:      "12 Gulshan Avenue",
		City:         "Dhaka",
		Capacity:     300,
		PricingUnit:  PricingHourly,
		PricePerHour: 250,
		MinimumHours: 4,
	}
}

func TestCreateAssignsOwner(t *testing.T) {
	svc, _ := newTestService()
	owner := organizer()

	venue, err := svc.Create(context.Background(), owner, validCreate())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if venue.OrganizerID.String() != owner.UserID {
		t.Errorf("owner = %s, want %s", venue.OrganizerID, owner.UserID)
	}
	if !venue.IsActive {
		t.Error("new venue should be active")
	}
}

func TestCreateRejectsInconsistentPricing(t *testing.T) {
	svc, _ := newTestService()

	req := validCreate()
	req.PricingUnit = PricingDaily
	req.PricePerDay = 0
	_, err := svc.Create(context.Background(), organizer(), req)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	req = validCreate()
	req.OperatingHours = OperatingHours{"friday": {Open: "22:00", Close: "09:00"}}
	_, err = svc.Create(context.Background(), organizer(), req)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for inverted hours, got %v", err)
	}
}

func TestUpdateOwnership(t *testing.T) {
	svc, _ := newTestService()
	owner := organizer()
	venue, _ := svc.Create(context.Background(), owner, validCreate())

	name := "Renamed Hall"
	if _, err := svc.Update(context.Background(), organizer(), venue.ID.String(), &UpdateVenueRequest{Name: &name}); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("foreign organizer update: expected forbidden, got %v", err)
	}

	admin := &middleware.Principal{UserID: uuid.NewString(), Role: constants.RoleAdmin}
	updated, err := svc.Update(context.Background(), admin, venue.ID.String(), &UpdateVenueRequest{Name: &name})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Name != name {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestInactiveVenueHiddenFromPublic(t *testing.T) {
	svc, _ := newTestService()
	owner := organizer()
	venue, _ := svc.Create(context.Background(), owner, validCreate())

	inactive := false
	if _, err := svc.Update(context.Background(), owner, venue.ID.String(), &UpdateVenueRequest{IsActive: &inactive}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetByID(context.Background(), venue.ID.String(), nil); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("public get of inactive venue: expected not found, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), venue.ID.String(), owner); err != nil {
		t.Fatalf("staff get of inactive venue: %v", err)
	}

	page, err := svc.List(context.Background(), pagination.Query{}, Filters{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 0 {
		t.Errorf("public listing returned %d inactive venues", len(page.Items))
	}
}

func TestListRejectsInvertedRanges(t *testing.T) {
	svc, _ := newTestService()
	lo, hi := 500, 100
	_, err := svc.List(context.Background(), pagination.Query{}, Filters{MinCapacity: &lo, MaxCapacity: &hi}, nil)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteWithEventsConflicts(t *testing.T) {
	svc, repo := newTestService()
	owner := organizer()
	venue, _ := svc.Create(context.Background(), owner, validCreate())
	repo.withEvent[venue.ID] = true

	if err := svc.Delete(context.Background(), owner, venue.ID.String()); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	repo.withEvent[venue.ID] = false
	if err := svc.Delete(context.Background(), owner, venue.ID.String()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestGetRejectsMalformedID(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.GetByID(context.Background(), "not-a-uuid", nil); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
