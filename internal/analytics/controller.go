package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

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

// GetDashboard godoc
// @Summary      Platform overview
// @Description  Account, catalog, booking and revenue totals. Cached for 10 minutes.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=Dashboard}
// @Router       /admin/analytics/dashboard [get]
func (c *Controller) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.service.Dashboard(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Dashboard analytics retrieved successfully", dashboard)
}

// GetRevenue godoc
// @Summary      Monthly revenue
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        months  query     int  false  "Months to include (1-24, default 6)"
// @Success      200  {object}  response.StandardApiResponse{data=RevenueReport}
// @Router       /admin/analytics/revenue [get]
func (c *Controller) GetRevenue(ctx *gin.Context) {
	var q RevenueQuery
	if err := c.validator.BindQuery(ctx, &q); err != nil {
		_ = ctx.Error(err)
		return
	}

	report, err := c.service.Revenue(ctx.Request.Context(), q.Months)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Revenue analytics retrieved successfully", report)
}

// GetTopVenues godoc
// @Summary      Best performing venues
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Venues to return (1-50, default 10)"
// @Success      200    {object}  response.StandardApiResponse{data=[]VenuePerformance}
// @Router       /admin/analytics/venues [get]
func (c *Controller) GetTopVenues(ctx *gin.Context) {
	var q TopVenuesQuery
	if err := c.validator.BindQuery(ctx, &q); err != nil {
		_ = ctx.Error(err)
		return
	}

	venues, err := c.service.TopVenues(ctx.Request.Context(), q.Limit)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Venue analytics retrieved successfully", venues)
}

// ListUsers godoc
// @Summary      List customer and organizer accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Param        search    query     string  false  "Name or email search"
// @Param        isActive  query     bool    false  "Only active or inactive accounts"
// @Success      200       {object}  response.StandardApiResponse{data=UserList}
// @Router       /admin/users [get]
func (c *Controller) ListUsers(ctx *gin.Context) {
	var q pagination.Query
	if err := c.validator.BindQuery(ctx, &q); err != nil {
		_ = ctx.Error(err)
		return
	}
	var filters UserQuery
	if err := c.validator.BindQuery(ctx, &filters); err != nil {
		_ = ctx.Error(err)
		return
	}

	page, err := c.service.Users(ctx.Request.Context(), q, filters)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Users retrieved successfully", page)
}

// ListReconciliation godoc
// @Summary      Payments awaiting reconciliation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  response.StandardApiResponse{data=payments.PaymentList}
// @Router       /admin/payments/reconciliation [get]
func (c *Controller) ListReconciliation(ctx *gin.Context) {
	var q pagination.Query
	if err := c.validator.BindQuery(ctx, &q); err != nil {
		_ = ctx.Error(err)
		return
	}

	page, err := c.service.Reconciliation(ctx.Request.Context(), q)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payments awaiting reconciliation retrieved successfully", page)
}
