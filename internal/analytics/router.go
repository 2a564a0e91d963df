package analytics

import (
	"github.com/gin-gonic/gin"
)

// Router serves the admin reporting endpoints
type Router struct {
	controller *Controller
}

func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")

	analytics := admin.Group("/analytics")
	{
		analytics.GET("/dashboard", r.controller.GetDashboard)
		analytics.GET("/revenue", r.controller.GetRevenue)
		analytics.GET("/venues", r.controller.GetTopVenues)
	}

	admin.GET("/users", r.controller.ListUsers)
	admin.GET("/payments/reconciliation", r.controller.ListReconciliation)
}
