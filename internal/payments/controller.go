package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/shared/middleware"
	"venuebook/internal/shared/pagination"
	"venuebook/internal/shared/utils/response"
	"venuebook/internal/shared/validation"
)

const IdempotencyKeyHeader = "Idempotency-Key"

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

// ListMethods godoc
// @Summary      Supported payment methods
// @Tags         payments
// @Produce      json
// @Success      200  {object}  response.StandardApiResponse{data=[]MethodInfo}
// @Router       /payments/methods [get]
func (c *Controller) ListMethods(ctx *gin.Context) {
	response.Success(ctx, http.StatusOK, "Payment methods retrieved successfully", c.service.Methods())
}

// CalculateCost godoc
// @Summary      Price a booking
// @Description  Returns the venue, meal, tax and service fee breakdown without reserving anything.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      CostRequest  true  "Slot to price"
// @Success      200  {object}  response.StandardApiResponse{data=CostBreakdown}
// @Failure      400  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /payments/calculate-cost [post]
func (c *Controller) CalculateCost(ctx *gin.Context) {
	var req CostRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	breakdown, err := c.service.CalculateCost(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Cost calculated successfully", breakdown)
}

// ProcessPayment godoc
// @Summary      Pay for and book a venue
// @Description  Charges the customer and creates the event. Requires an Idempotency-Key header; retries with the same key return the first outcome.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 true  "Client generated key, unique per booking attempt"
// @Param        request          body      ProcessPaymentRequest  true  "Booking and payment details"
// @Success      201  {object}  response.StandardApiResponse{data=ProcessResult}
// @Success      200  {object}  response.StandardApiResponse{data=ProcessResult}
// @Failure      402  {object}  response.StandardApiResponse
// @Failure      409  {object}  response.StandardApiResponse
// @Failure      422  {object}  response.StandardApiResponse
// @Router       /payments/process [post]
func (c *Controller) ProcessPayment(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req ProcessPaymentRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	result, err := c.service.Process(ctx.Request.Context(), principal, ctx.GetHeader(IdempotencyKeyHeader), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if result.Replayed {
		response.Success(ctx, http.StatusOK, "Payment already processed", result)
		return
	}
	response.Success(ctx, http.StatusCreated, "Payment processed and booking created", result)
}

// ListPayments godoc
// @Summary      List payments
// @Description  Customers see their own payments. Staff see every payment.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        page                 query     int     false  "Page number"
// @Param        limit                query     int     false  "Page size (max 100)"
// @Param        status               query     string  false  "pending, success, failed or refunded"
// @Param        method               query     string  false  "card, bkash, nagad or rocket"
// @Param        needsReconciliation  query     bool    false  "Only flagged payments"
// @Param        from                 query     string  false  "Created at or after (RFC 3339)"
// @Param        to                   query     string  false  "Created before (RFC 3339)"
// @Success      200  {object}  response.StandardApiResponse{data=PaymentList}
// @Router       /payments [get]
func (c *Controller) ListPayments(ctx *gin.Context) {
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

	response.Success(ctx, http.StatusOK, "Payments retrieved successfully", page)
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  response.StandardApiResponse{data=Payment}
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /payments/{id} [get]
func (c *Controller) GetPayment(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	payment, err := c.service.GetByID(ctx.Request.Context(), principal, ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payment retrieved successfully", payment)
}

// RefundPayment godoc
// @Summary      Refund a successful payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Payment ID"
// @Param        request  body      RefundRequest  true  "Refund reason"
// @Success      200  {object}  response.StandardApiResponse{data=Payment}
// @Failure      404  {object}  response.StandardApiResponse
// @Failure      422  {object}  response.StandardApiResponse
// @Router       /payments/{id}/refund [post]
func (c *Controller) RefundPayment(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req RefundRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	payment, err := c.service.Refund(ctx.Request.Context(), principal, ctx.Param("id"), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payment refunded successfully", payment)
}

// Webhook godoc
// @Summary      Payment provider callback
// @Description  Signed with HMAC-SHA256 over transactionId|status|amount|method|timestamp.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      WebhookPayload  true  "Status update"
// @Success      200  {object}  response.StandardApiResponse{data=WebhookResult}
// @Failure      401  {object}  response.StandardApiResponse
// @Router       /payments/webhook [post]
func (c *Controller) Webhook(ctx *gin.Context) {
	var payload WebhookPayload
	if err := c.validator.BindJSON(ctx, &payload); err != nil {
		_ = ctx.Error(err)
		return
	}

	result, err := c.service.HandleWebhook(ctx.Request.Context(), &payload)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	message := "Webhook processed"
	if result.Outcome == WebhookUnknown {
		message = "transaction not found"
	}
	response.Success(ctx, http.StatusOK, message, result)
}
