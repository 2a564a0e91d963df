package auth

import (
	"github.com/gin-gonic/gin"
)

// Router handles account routes for customers and organizers
type Router struct {
	controller *Controller
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

// SetupRoutes registers all auth routes. Access rules live in the API policy table.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("/register", r.controller.RegisterUser)
		users.POST("/login", r.controller.LoginUser)
		users.POST("/refresh", r.controller.RefreshUser)
		users.GET("/profile", r.controller.GetUserProfile)
		users.PUT("/profile", r.controller.UpdateUserProfile)
		users.PUT("/change-password", r.controller.ChangeUserPassword)
	}

	organizer := rg.Group("/organizer")
	{
		organizer.POST("/register", r.controller.RegisterOrganizer)
		organizer.POST("/login", r.controller.LoginOrganizer)
		organizer.POST("/refresh", r.controller.RefreshOrganizer)
		organizer.GET("/profile", r.controller.GetOrganizerProfile)
	}
}
