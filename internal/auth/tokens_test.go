package auth

import (
	"errors"
	"testing"
	"time"

	"venuebook/internal/shared/config"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/middleware"
)

func testTokens() *TokenManager {
	return NewTokenManager(config.JWTConfig{
		Secret:           "test-secret",
		Issuer:           "venuebook",
		JWTExpiresIn:     time.Hour,
		RefreshExpiresIn: 24 * time.Hour,
	})
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	tm := testTokens()
	pair, err := tm.Issue(middleware.Principal{UserID: "u-1", Email: "a@b.c", Role: constants.RoleCustomer})
	if err != nil {
		t.Fatal(err)
	}

	p, err := tm.VerifyAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.UserID != "u-1" || p.Role != constants.RoleCustomer || p.Email != "a@b.c" {
		t.Errorf("principal = %+v", p)
	}
	if pair.ExpiresIn != 3600 {
		t.Errorf("expiresIn = %d", pair.ExpiresIn)
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	tm := testTokens()
	pair, _ := tm.Issue(middleware.Principal{UserID: "u-1", Role: constants.RoleCustomer})

	if _, err := tm.VerifyAccessToken(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
	if _, err := tm.VerifyRefreshToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}
	if _, err := tm.VerifyRefreshToken(pair.RefreshToken); err != nil {
		t.Fatalf("refresh token rejected: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := testTokens()
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	pair, _ := tm.Issue(middleware.Principal{UserID: "u-1", Role: constants.RoleCustomer})

	if _, err := tm.VerifyAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestForeignSecretRejected(t *testing.T) {
	pair, _ := testTokens().Issue(middleware.Principal{UserID: "u-1", Role: constants.RoleAdmin})

	other := NewTokenManager(config.JWTConfig{Secret: "other", Issuer: "venuebook", JWTExpiresIn: time.Hour})
	if _, err := other.VerifyAccessToken(pair.AccessToken); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}
