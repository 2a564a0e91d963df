package auth

// RegisterUserRequest is the customer sign-up payload
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,notblank,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
	Phone    string `json:"phone" validate:"omitempty,bdmobile"`
	Address  string `json:"address" validate:"omitempty,max=500"`
}

// RegisterOrganizerRequest is the organizer sign-up payload
type RegisterOrganizerRequest struct {
	Name        string `json:"name" validate:"required,notblank,min=2,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,maxbytes=72"`
	Phone       string `json:"phone" validate:"omitempty,bdmobile"`
	CompanyName string `json:"companyName" validate:"omitempty,max=200"`
}

// login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// represents change password request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,maxbytes=72,nefield=CurrentPassword"`
}

// UpdateProfileRequest edits the caller's profile; omitted fields are kept
type UpdateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,notblank,min=2,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,bdmobile"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}
