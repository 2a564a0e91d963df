package auth

import (
	"time"

	"venuebook/internal/organizers"
	"venuebook/internal/users"
)

// AccountResponse is a user or organizer without sensitive fields
type AccountResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Account AccountResponse `json:"account"`
	Tokens  TokenPair       `json:"tokens"`
}

func userResponse(u *users.User) AccountResponse {
	return AccountResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		Address:   u.Address,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func organizerResponse(o *organizers.Organizer) AccountResponse {
	return AccountResponse{
		ID:          o.ID.String(),
		Name:        o.Name,
		Email:       o.Email,
		Role:        o.Role,
		Phone:       o.Phone,
		CompanyName: o.CompanyName,
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
