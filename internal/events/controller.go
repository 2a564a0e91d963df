package events

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

// ListEvents godoc
// @Summary      List bookings
// @Description  Customers see their own events, organizers and admins see all.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Param        status     query     string  false  "pending, confirmed or cancelled"
// @Param        venueId    query     string  false  "Venue ID"
// @Param        from       query     string  false  "RFC3339 lower bound"
// @Param        to         query     string  false  "RFC3339 upper bound"
// @Success      200  {object}  response.StandardApiResponse{data=EventList}
// @Router       /events [get]
func (c *Controller) ListEvents(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

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

	page, err := c.service.List(ctx.Request.Context(), principal, q, filters)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Events retrieved successfully", page)
}

// GetEvent godoc
// @Summary      Get a booking
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  response.StandardApiResponse{data=Event}
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /events/{id} [get]
func (c *Controller) GetEvent(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	event, err := c.service.GetByID(ctx.Request.Context(), principal, ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Event retrieved successfully", event)
}

// CancelEvent godoc
// @Summary      Cancel a booking
// @Description  Refunds are a separate action on the payment.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true   "Event ID"
// @Param        body  body      CancelEventRequest  false  "Reason"
// @Success      200   {object}  response.StandardApiResponse{data=Event}
// @Failure      422   {object}  response.StandardApiResponse
// @Router       /events/{id}/cancel [post]
func (c *Controller) CancelEvent(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req CancelEventRequest
	if ctx.Request.ContentLength > 0 {
		if err := c.validator.BindJSON(ctx, &req); err != nil {
			_ = ctx.Error(err)
			return
		}
	}

	event, err := c.service.Cancel(ctx.Request.Context(), principal, ctx.Param("id"), req.Reason)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Event cancelled successfully", event)
}

// UpdateStatus godoc
// @Summary      Confirm or cancel a booking
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Event ID"
// @Param        body  body      UpdateStatusRequest  true  "New status"
// @Success      200   {object}  response.StandardApiResponse{data=Event}
// @Failure      422   {object}  response.StandardApiResponse
// @Router       /admin/events/{id}/status [patch]
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req UpdateStatusRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	event, err := c.service.UpdateStatus(ctx.Request.Context(), principal, ctx.Param("id"), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Event status updated successfully", event)
}

// CheckAvailability godoc
// @Summary      Check whether a venue slot can be booked
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      AvailabilityRequest  true  "Slot"
// @Success      200   {object}  response.StandardApiResponse{data=Availability}
// @Failure      400   {object}  response.StandardApiResponse
// @Router       /events/check-availability [post]
func (c *Controller) CheckAvailability(ctx *gin.Context) {
	var req AvailabilityRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	availability, err := c.service.CheckAvailability(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Availability checked", availability)
}

// VenueSchedule godoc
// @Summary      Booked slots of a venue
// @Tags         venues
// @Produce      json
// @Param        id    path      string  true   "Venue ID"
// @Param        from  query     string  false  "Window start (RFC 3339)"
// @Param        to    query     string  false  "Window end (RFC 3339)"
// @Success      200   {object}  response.StandardApiResponse{data=VenueSchedule}
// @Failure      404   {object}  response.StandardApiResponse
// @Router       /venues/{id}/availability [get]
func (c *Controller) VenueSchedule(ctx *gin.Context) {
	var q ScheduleQuery
	if err := c.validator.BindQuery(ctx, &q); err != nil {
		_ = ctx.Error(err)
		return
	}

	schedule, err := c.service.VenueSchedule(ctx.Request.Context(), ctx.Param("id"), q)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Venue schedule retrieved successfully", schedule)
}
