package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/shared/middleware"
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

// RegisterUser godoc
// @Summary      Register a customer account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterUserRequest  true  "Account details"
// @Success      201   {object}  response.StandardApiResponse{data=AuthResponse}
// @Failure      400   {object}  response.StandardApiResponse
// @Failure      409   {object}  response.StandardApiResponse
// @Router       /users/register [post]
func (c *Controller) RegisterUser(ctx *gin.Context) {
	var req RegisterUserRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	resp, err := c.service.RegisterUser(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusCreated, "User registered successfully", resp)
}

// LoginUser godoc
// @Summary      Log in as a customer
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  response.StandardApiResponse{data=AuthResponse}
// @Failure      401   {object}  response.StandardApiResponse
// @Router       /users/login [post]
func (c *Controller) LoginUser(ctx *gin.Context) {
	var req LoginRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	resp, err := c.service.LoginUser(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Login successful", resp)
}

// RefreshUser godoc
// @Summary      Exchange a customer refresh token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshTokenRequest  true  "Refresh token"
// @Success      200   {object}  response.StandardApiResponse{data=TokenPair}
// @Failure      401   {object}  response.StandardApiResponse
// @Router       /users/refresh [post]
func (c *Controller) RefreshUser(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	tokens, err := c.service.RefreshUser(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Token refreshed successfully", tokens)
}

// GetUserProfile godoc
// @Summary      Current customer profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=AccountResponse}
// @Router       /users/profile [get]
func (c *Controller) GetUserProfile(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	profile, err := c.service.UserProfile(ctx.Request.Context(), principal.UserID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateUserProfile godoc
// @Summary      Update the current customer profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      UpdateProfileRequest  true  "Profile fields"
// @Success      200   {object}  response.StandardApiResponse{data=AccountResponse}
// @Failure      400   {object}  response.StandardApiResponse
// @Router       /users/profile [put]
func (c *Controller) UpdateUserProfile(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req UpdateProfileRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	profile, err := c.service.UpdateUserProfile(ctx.Request.Context(), principal.UserID, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Profile updated successfully", profile)
}

// ChangeUserPassword godoc
// @Summary      Change the current customer password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ChangePasswordRequest  true  "Current and new password"
// @Success      200   {object}  response.StandardApiResponse
// @Failure      400   {object}  response.StandardApiResponse
// @Failure      401   {object}  response.StandardApiResponse
// @Router       /users/change-password [put]
func (c *Controller) ChangeUserPassword(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req ChangePasswordRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := c.service.ChangeUserPassword(ctx.Request.Context(), principal.UserID, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Password changed successfully", nil)
}

// RegisterOrganizer godoc
// @Summary      Register an organizer account
// @Tags         organizer
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterOrganizerRequest  true  "Account details"
// @Success      201   {object}  response.StandardApiResponse{data=AuthResponse}
// @Failure      409   {object}  response.StandardApiResponse
// @Router       /organizer/register [post]
func (c *Controller) RegisterOrganizer(ctx *gin.Context) {
	var req RegisterOrganizerRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	resp, err := c.service.RegisterOrganizer(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Organizer registered successfully", resp)
}

// LoginOrganizer godoc
// @Summary      Log in as an organizer
// @Tags         organizer
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  response.StandardApiResponse{data=AuthResponse}
// @Failure      401   {object}  response.StandardApiResponse
// @Router       /organizer/login [post]
func (c *Controller) LoginOrganizer(ctx *gin.Context) {
	var req LoginRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	resp, err := c.service.LoginOrganizer(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Login successful", resp)
}

// RefreshOrganizer godoc
// @Summary      Exchange an organizer refresh token
// @Tags         organizer
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshTokenRequest  true  "Refresh token"
// @Success      200   {object}  response.StandardApiResponse{data=TokenPair}
// @Failure      401   {object}  response.StandardApiResponse
// @Router       /organizer/refresh [post]
func (c *Controller) RefreshOrganizer(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := c.validator.BindJSON(ctx, &req); err != nil {
		_ = ctx.Error(err)
		return
	}

	tokens, err := c.service.RefreshOrganizer(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Token refreshed successfully", tokens)
}

// GetOrganizerProfile godoc
// @Summary      Current organizer profile
// @Tags         organizer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=AccountResponse}
// @Router       /organizer/profile [get]
func (c *Controller) GetOrganizerProfile(ctx *gin.Context) {
	principal, err := middleware.MustPrincipal(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	profile, err := c.service.OrganizerProfile(ctx.Request.Context(), principal.UserID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	response.Success(ctx, http.StatusOK, "Profile retrieved successfully", profile)
}
