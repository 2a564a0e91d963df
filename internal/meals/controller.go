package meals

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

// ListMeals godoc
// @Summary      List meal packages
// @Tags         meals
// @Produce      json
// @Param        page          query     int     false  "Page number"
// @Param        limit         query     int     false  "Page size (max 100)"
// @Param        search        query     string  false  "Name or description search"
// @Param        mealType      query     string  false  "veg, nonveg or buffet"
// @Param        servingStyle  query     string  false  "Serving style"
// @Param        minPrice      query     number  false  "Minimum price per person"
// @Param        maxPrice      query     number  false  "Maximum price per person"
// @Param        dietaryTag    query     string  false  "Dietary tag"
// @Success      200  {object}  response.StandardApiResponse{data=MealList}
// @Router       /meals [get]
func (c *Controller) ListMeals(ctx *gin.Context) {
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

	response.Success(ctx, http.StatusOK, "Meals retrieved successfully", page)
}

// GetMeal godoc
// @Summary      Get a meal package
// @Tags         meals
// @Produce      json
// @Param        id   path      string  true  "Meal ID"
// @Success      200  {object}  response.StandardApiResponse{data=Meal}
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /meals/{id} [get]
func (c *Controller) GetMeal(ctx *gin.Context) {
	viewer, _ := middleware.CurrentPrincipal(ctx)
	meal, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"), viewer)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Meal retrieved successfully", meal)
}

// CreateMeal godoc
// @Summary      Create a meal package
// @Tags         meals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      CreateMealRequest  true  "Meal"
// @Success      201   {object}  response.StandardApiResponse{data=Meal}
// @Router       /meals [post]
func (c *Controller) CreateMeal(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req CreateMealRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	meal, err := c.service.Create(ctx.Request.Context(), principal, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Meal created successfully", meal)
}

// UpdateMeal godoc
// @Summary      Update a meal package
// @Tags         meals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Meal ID"
// @Param        body  body      UpdateMealRequest  true  "Fields to change"
// @Success      200   {object}  response.StandardApiResponse{data=Meal}
// @Failure      403   {object}  response.StandardApiResponse
// @Router       /meals/{id} [put]
func (c *Controller) UpdateMeal(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req UpdateMealRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	meal, err := c.service.Update(ctx.Request.Context(), principal, ctx.Param("id"), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Meal updated successfully", meal)
}

// DeleteMeal godoc
// @Summary      Delete a meal package
// @Tags         meals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meal ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      403  {object}  response.StandardApiResponse
// @Router       /meals/{id} [delete]
func (c *Controller) DeleteMeal(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), principal, ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Meal deleted successfully", nil)
}
