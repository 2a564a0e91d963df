package events

import (
	"github.com/gin-gonic/gin"
)

// Router handles booking routes and the venue availability calendar
type Router struct {
	controller *Controller
}

func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("", r.controller.ListEvents)
		events.POST("/check-availability", r.controller.CheckAvailability)
		events.GET("/:id", r.controller.GetEvent)
		events.POST("/:id/cancel", r.controller.CancelEvent)
	}

	rg.GET("/venues/:id/availability", r.controller.VenueSchedule)
	rg.PATCH("/admin/events/:id/status", r.controller.UpdateStatus)
}
