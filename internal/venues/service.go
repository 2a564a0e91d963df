package venues

import (
	"context"
	"fmt"

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
	Create(ctx context.Context, actor *middleware.Principal, req *CreateVenueRequest) (*Venue, error)
	GetByID(ctx context.Context, id string, viewer *middleware.Principal) (*Venue, error)
	List(ctx context.Context, q pagination.Query, f Filters, viewer *middleware.Principal) (*VenueList, error)
	Update(ctx context.Context, actor *middleware.Principal, id string, req *UpdateVenueRequest) (*Venue, error)
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

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.Field("id", "id must be a valid UUID")
	}
	return parsed, nil
}

func isStaff(p *middleware.Principal) bool {
	return p != nil && constants.IsStaff(p.Role)
}

func (s *service) Create(ctx context.Context, actor *middleware.Principal, req *CreateVenueRequest) (*Venue, error) {
	organizerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid account")
	}

	venue := &Venue{
		OrganizerID:    organizerID,
		Name:           req.Name,
		Description:    req.Description,
		VenueType:      req.VenueType,
		Address:        req.Address,
		City:           req.City,
		Capacity:       req.Capacity,
		PricingUnit:    req.PricingUnit,
		PricePerHour:   req.PricePerHour,
		PricePerDay:    req.PricePerDay,
		MinimumHours:   req.MinimumHours,
		Facilities:     req.Facilities,
		OperatingHours: req.OperatingHours,
		Images:         req.Images,
		IsActive:       true,
	}
	if venue.MinimumHours == 0 {
		venue.MinimumHours = 1
	}
	if err := validateVenue(venue); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, err
	}

	invalidateVenueCache(ctx, s.cache, s.log)
	return venue, nil
}

func (s *service) GetByID(ctx context.Context, id string, viewer *middleware.Principal) (*Venue, error) {
	venueID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var venue Venue
	err = s.cache.GetOrSet(ctx, constants.BuildVenueDetailKey(venueID.String()), constants.TTL_VENUE_DETAIL, func() (interface{}, error) {
		return s.repo.FindByID(ctx, venueID)
	}, &venue)
	if err != nil {
		return nil, err
	}

	if !venue.IsActive && !isStaff(viewer) {
		return nil, apperrors.NotFound("venue")
	}
	return &venue, nil
}

func (s *service) List(ctx context.Context, q pagination.Query, f Filters, viewer *middleware.Principal) (*VenueList, error) {
	q.Normalize()
	if !isStaff(viewer) {
		active := true
		f.IsActive = &active
	}
	if f.MinCapacity != nil && f.MaxCapacity != nil && *f.MinCapacity > *f.MaxCapacity {
		return nil, apperrors.Field("minCapacity", "minCapacity must not exceed maxCapacity")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, apperrors.Field("minPrice", "minPrice must not exceed maxPrice")
	}

	var page VenueList
	key := constants.BuildVenuesListKey(listDigest(q, f))
	err := s.cache.GetOrSet(ctx, key, constants.TTL_VENUES_LIST, func() (interface{}, error) {
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

func (s *service) Update(ctx context.Context, actor *middleware.Principal, id string, req *UpdateVenueRequest) (*Venue, error) {
	venue, err := s.ownedVenue(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(venue, req)
	if err := validateVenue(venue); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, venue); err != nil {
		return nil, err
	}

	invalidateVenueCache(ctx, s.cache, s.log)
	return venue, nil
}

func (s *service) Delete(ctx context.Context, actor *middleware.Principal, id string) error {
	venue, err := s.ownedVenue(ctx, actor, id)
	if err != nil {
		return err
	}

	hasEvents, err := s.repo.HasEvents(ctx, venue.ID)
	if err != nil {
		return err
	}
	if hasEvents {
		return apperrors.Conflict("venue has bookings; deactivate it instead")
	}

	if err := s.repo.Delete(ctx, venue.ID); err != nil {
		return err
	}

	invalidateVenueCache(ctx, s.cache, s.log)
	return nil
}

// ownedVenue loads a venue the actor may modify: admins any, organizers their own
func (s *service) ownedVenue(ctx context.Context, actor *middleware.Principal, id string) (*Venue, error) {
	venueID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	venue, err := s.repo.FindByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	if actor.Role != constants.RoleAdmin && venue.OrganizerID.String() != actor.UserID {
		return nil, apperrors.Forbidden("you can only manage your own venues")
	}
	return venue, nil
}

func applyUpdate(v *Venue, req *UpdateVenueRequest) {
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.VenueType != nil {
		v.VenueType = *req.VenueType
	}
	if req.Address != nil {
		v.Address = *req.Address
	}
	if req.City != nil {
		v.City = *req.City
	}
	if req.Capacity != nil {
		v.Capacity = *req.Capacity
	}
	if req.PricingUnit != nil {
		v.PricingUnit = *req.PricingUnit
	}
	if req.PricePerHour != nil {
		v.PricePerHour = *req.PricePerHour
	}
	if req.PricePerDay != nil {
		v.PricePerDay = *req.PricePerDay
	}
	if req.MinimumHours != nil {
		v.MinimumHours = *req.MinimumHours
	}
	if req.Facilities != nil {
		v.Facilities = *req.Facilities
	}
	if req.OperatingHours != nil {
		v.OperatingHours = *req.OperatingHours
	}
	if req.Images != nil {
		v.Images = *req.Images
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
}

// validateVenue checks the cross-field rules struct tags cannot express
func validateVenue(v *Venue) error {
	switch v.PricingUnit {
	case PricingHourly:
		if v.PricePerHour <= 0 {
			return apperrors.Field("pricePerHour", "pricePerHour must be greater than 0 for hourly venues")
		}
	case PricingDaily:
		if v.PricePerDay <= 0 {
			return apperrors.Field("pricePerDay", "pricePerDay must be greater than 0 for daily venues")
		}
	default:
		return apperrors.Field("pricingUnit", fmt.Sprintf("unsupported pricing unit %q", v.PricingUnit))
	}

	for day, hours := range v.OperatingHours {
		if hours.Closed {
			continue
		}
		if hours.Open == "" || hours.Close == "" {
			return apperrors.Field("operatingHours."+day, "open and close are required unless the day is closed")
		}
		if hours.Open >= hours.Close {
			return apperrors.Field("operatingHours."+day, "close must be after open")
		}
	}
	return nil
}
