package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"venuebook/internal/shared/apperrors"
)

// Context keys set by the authentication middleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

// Principal is the authenticated caller
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// TokenVerifier validates an access token and returns its subject
type TokenVerifier interface {
	VerifyAccessToken(token string) (*Principal, error)
}

// OptionalAuth validates JWT token if present but doesn't require it
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = authenticate(c, verifier)
		c.Next()
	}
}

func authenticate(c *gin.Context, verifier TokenVerifier) error {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return apperrors.Unauthorized("Authorization header is required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.Unauthorized("authorization header format must be Bearer {token}")
	}

	principal, err := verifier.VerifyAccessToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.Unauthorized("invalid or expired token")
	}

	c.Set(ContextUserID, principal.UserID)
	c.Set(ContextUserEmail, principal.Email)
	c.Set(ContextUserRole, principal.Role)
	return nil
}

// CurrentPrincipal returns the authenticated caller, if any
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	id := c.GetString(ContextUserID)
	if id == "" {
		return nil, false
	}
	return &Principal{
		UserID: id,
		Email:  c.GetString(ContextUserEmail),
		Role:   c.GetString(ContextUserRole),
	}, true
}

// MustPrincipal is CurrentPrincipal for handlers on authenticated routes
func MustPrincipal(c *gin.Context) (*Principal, error) {
	p, ok := CurrentPrincipal(c)
	if !ok {
		return nil, apperrors.Unauthorized("authentication required")
	}
	return p, nil
}
