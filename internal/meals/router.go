package meals

import (
	"github.com/gin-gonic/gin"
)

// Router handles catering package routes
type Router struct {
	controller *Controller
}

func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	meals := rg.Group("/meals")
	{
		meals.GET("", r.controller.ListMeals)
		meals.GET("/:id", r.controller.GetMeal)
		meals.POST("", r.controller.CreateMeal)
		meals.PUT("/:id", r.controller.UpdateMeal)
		meals.DELETE("/:id", r.controller.DeleteMeal)
	}
}
