package venues

import (
	"github.com/gin-gonic/gin"
)

// Router handles venue catalog routes
type Router struct {
	controller *Controller
}

func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	venues := rg.Group("/venues")
	{
		venues.GET("", r.controller.ListVenues)
		venues.GET("/:id", r.controller.GetVenue)
		venues.POST("", r.controller.CreateVenue)
		venues.PUT("/:id", r.controller.UpdateVenue)
		venues.DELETE("/:id", r.controller.DeleteVenue)
	}
}
