package payments

import (
	"github.com/gin-gonic/gin"
)

type Router struct {
	controller *Controller
}

func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.GET("/methods", r.controller.ListMethods)
		payments.POST("/calculate-cost", r.controller.CalculateCost)
		payments.POST("/process", r.controller.ProcessPayment)
		payments.POST("/webhook", r.controller.Webhook)
		payments.GET("", r.controller.ListPayments)
		payments.GET("/:id", r.controller.GetPayment)
		payments.POST("/:id/refund", r.controller.RefundPayment)
	}
}
