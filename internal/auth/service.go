package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"venuebook/internal/organizers"
	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/middleware"
	"venuebook/internal/users"
	"venuebook/pkg/logger"
)

const invalidCredentials = "Invalid email or password"

type Service interface {
	RegisterUser(ctx context.Context, req *RegisterUserRequest) (*AuthResponse, error)
	LoginUser(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error)
	UserProfile(ctx context.Context, userID string) (*AccountResponse, error)
	UpdateUserProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*AccountResponse, error)
	ChangeUserPassword(ctx context.Context, userID string, req *ChangePasswordRequest) error

	RegisterOrganizer(ctx context.Context, req *RegisterOrganizerRequest) (*AuthResponse, error)
	LoginOrganizer(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshOrganizer(ctx context.Context, refreshToken string) (*TokenPair, error)
	OrganizerProfile(ctx context.Context, organizerID string) (*AccountResponse, error)
}

type service struct {
	users      users.Repository
	organizers organizers.Repository
	tokens     *TokenManager
	log        *logger.Logger
	hashCost   int
}

func NewService(userRepo users.Repository, organizerRepo organizers.Repository, tokens *TokenManager, log *logger.Logger) Service {
	return &service{
		users:      userRepo,
		organizers: organizerRepo,
		tokens:     tokens,
		log:        log,
		hashCost:   bcrypt.DefaultCost,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy spends the same bcrypt work as a real comparison so unknown
// emails cannot be told apart by response time.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("venuebook-timing-equalizer"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// maxPasswordBytes is bcrypt's input limit
const maxPasswordBytes = 72

func (s *service) hash(field, password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", apperrors.Field(field, fmt.Sprintf("%s must be at most %d bytes", field, maxPasswordBytes))
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Customers

func (s *service) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*AuthResponse, error) {
	hashed, err := s.hash("password", req.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     constants.RoleCustomer,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.userSession(user)
}

func (s *service) LoginUser(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			compareDummy(req.Password)
			s.log.LogAuthFailure(ctx, "unknown email", "")
			return nil, apperrors.Unauthorized(invalidCredentials)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		s.log.LogAuthFailure(ctx, "wrong password", "")
		return nil, apperrors.Unauthorized(invalidCredentials)
	}
	if !user.IsActive {
		return nil, apperrors.Forbidden("account is deactivated")
	}

	s.log.LogAuthSuccess(ctx, user.ID.String(), "password")
	return s.userSession(user)
}

func (s *service) RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil || claims.Role != constants.RoleCustomer {
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid or expired refresh token")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Forbidden("account is deactivated")
	}

	return s.tokens.Issue(middleware.Principal{UserID: user.ID.String(), Email: user.Email, Role: user.Role})
}

func (s *service) UserProfile(ctx context.Context, userID string) (*AccountResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

func (s *service) UpdateUserProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*AccountResponse, error) {
	user, err := s.users.UpdateProfile(ctx, userID, users.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

func (s *service) ChangeUserPassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return apperrors.Field("currentPassword", "current password is incorrect")
	}

	hashed, err := s.hash("newPassword", req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hashed)
}

func (s *service) userSession(user *users.User) (*AuthResponse, error) {
	tokens, err := s.tokens.Issue(middleware.Principal{UserID: user.ID.String(), Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Account: userResponse(user), Tokens: *tokens}, nil
}

// Organizers

func (s *service) RegisterOrganizer(ctx context.Context, req *RegisterOrganizerRequest) (*AuthResponse, error) {
	hashed, err := s.hash("password", req.Password)
	if err != nil {
		return nil, err
	}

	// Self-registration never grants admin; that account comes from bootstrap.
	organizer := &organizers.Organizer{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashed,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Role:        constants.RoleOrganizer,
		IsActive:    true,
	}
	if err := s.organizers.Create(ctx, organizer); err != nil {
		return nil, err
	}

	return s.organizerSession(organizer)
}

func (s *service) LoginOrganizer(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	organizer, err := s.organizers.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			compareDummy(req.Password)
			s.log.LogAuthFailure(ctx, "unknown organizer email", "")
			return nil, apperrors.Unauthorized(invalidCredentials)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(organizer.Password), []byte(req.Password)) != nil {
		s.log.LogAuthFailure(ctx, "wrong organizer password", "")
		return nil, apperrors.Unauthorized(invalidCredentials)
	}
	if !organizer.IsActive {
		return nil, apperrors.Forbidden("account is deactivated")
	}

	s.log.LogAuthSuccess(ctx, organizer.ID.String(), "password")
	return s.organizerSession(organizer)
}

func (s *service) RefreshOrganizer(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil || !constants.IsStaff(claims.Role) {
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}

	organizer, err := s.organizers.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid or expired refresh token")
		}
		return nil, err
	}
	if !organizer.IsActive {
		return nil, apperrors.Forbidden("account is deactivated")
	}

	return s.tokens.Issue(middleware.Principal{UserID: organizer.ID.String(), Email: organizer.Email, Role: organizer.Role})
}

func (s *service) OrganizerProfile(ctx context.Context, organizerID string) (*AccountResponse, error) {
	organizer, err := s.organizers.FindByID(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	resp := organizerResponse(organizer)
	return &resp, nil
}

func (s *service) organizerSession(organizer *organizers.Organizer) (*AuthResponse, error) {
	tokens, err := s.tokens.Issue(middleware.Principal{UserID: organizer.ID.String(), Email: organizer.Email, Role: organizer.Role})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Account: organizerResponse(organizer), Tokens: *tokens}, nil
}
