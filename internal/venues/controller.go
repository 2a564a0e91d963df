package venues

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/shared/middleware"
	"venuebook/internal/shared/pagination"
	"venuebook/internal/shared/utils/response"
	"venuebook/internal/shared/validation"
)

type Controller struct {
	service   Service
	validator *validation.Validator
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validation.Default(),
	}
}

// ListVenues godoc
// @Summary      List venues
// @Description  Paginated venue search. Inactive venues are only visible to staff.
// @Tags         venues
// @Produce      json
// @Param        page         query     int     false  "Page number"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Param        search       query     string  false  "Name or description search"
// @Param        sortBy       query     string  false  "id, name, city, capacity, pricePerHour, pricePerDay, createdAt"
// @Param        sortOrder    query     string  false  "asc or desc"
// @Param        venueType    query     string  false  "Venue type"
// @Param        city         query     string  false  "City (case-insensitive)"
// @Param        minCapacity  query     int     false  "Minimum capacity"
// @Param        maxCapacity  query     int     false  "Maximum capacity"
// @Param        minPrice     query     number  false  "Minimum rate"
// @Param        maxPrice     query     number  false  "Maximum rate"
// @Param        facility     query     string  false  "Required facility"
// @Success      200  {object}  response.StandardApiResponse{data=VenueList}
// @Failure      400  {object}  response.StandardApiResponse
// @Router       /venues [get]
func (c *Controller) ListVenues(ctx *gin.Context) {
	var q pagination.Query
	if err := c.validator.BindQuery(ctx, &q); err != nil {
		_ = ctx.Error(err)
		return
	}
	var filters Filters
	if err := c.validator.BindQuery(ctx, &filters); err != nil {
		_ = ctx.Error(err)
		return
	}

	viewer, _ := middleware.CurrentPrincipal(ctx)
	page, err := c.service.List(ctx.Request.Context(), q, filters, viewer)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Venues retrieved successfully", page)
}

// GetVenue godoc
// @Summary      Get a venue
// @Tags         venues
// @Produce      json
// @Param        id   path      string  true  "Venue ID"
// @Success      200  {object}  response.StandardApiResponse{data=Venue}
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /venues/{id} [get]
func (c *Controller) GetVenue(ctx *gin.Context) {
	viewer, _ := middleware.CurrentPrincipal(ctx)
	venue, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"), viewer)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Venue retrieved successfully", venue)
}

// CreateVenue godoc
// @Summary      Create a venue
// @Tags         venues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      CreateVenueRequest  true  "Venue"
// @Success      201   {object}  response.StandardApiResponse{data=Venue}
// @Failure      400   {object}  response.StandardApiResponse
// @Failure      403   {object}  response.StandardApiResponse
// @Router       /venues [post]
func (c *Controller) CreateVenue(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req CreateVenueRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	venue, err := c.service.Create(ctx.Request.Context(), principal, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Venue created successfully", venue)
}

// UpdateVenue godoc
// @Summary      Update a venue
// @Tags         venues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Venue ID"
// @Param        body  body      UpdateVenueRequest  true  "Fields to change"
// @Success      200   {object}  response.StandardApiResponse{data=Venue}
// @Failure      403   {object}  response.StandardApiResponse
// @Router       /venues/{id} [put]
func (c *Controller) UpdateVenue(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req UpdateVenueRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	venue, err := c.service.Update(ctx.Request.Context(), principal, ctx.Param("id"), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Venue updated successfully", venue)
}

// DeleteVenue godoc
// @Summary      Delete a venue
// @Description  Venues with bookings cannot be deleted.
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Venue ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      409  {object}  response.StandardApiResponse
// @Router       /venues/{id} [delete]
func (c *Controller) DeleteVenue(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), principal, ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Venue deleted successfully", nil)
}
