package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"venuebook/pkg/logger"
)

func TestGetRateLimitType(t *testing.T) {
	cases := map[string]RateLimitType{
		"/health":                            RateLimitTypeHealth,
		"/api/v1/payments/webhook":           RateLimitTypeWebhook,
		"/api/v1/payments/process":           RateLimitTypePayment,
		"/api/v1/payments/:id/refund":        RateLimitTypePayment,
		"/api/v1/users/login":                RateLimitTypeAuth,
		"/api/v1/organizer/register":         RateLimitTypeAuth,
		"/api/v1/admin/analytics/dashboard":  RateLimitTypeAnalytics,
		"/api/v1/admin/events/:id/status":    RateLimitTypeAdmin,
		"/api/v1/venues":                     RateLimitTypePublic,
		"/api/v1/meals/:id":                  RateLimitTypePublic,
		"/api/v1/events/check-availability":  RateLimitTypeDefault,
	}
	for path, want := range cases {
		if got := getRateLimitType(path); got != want {
			t.Errorf("%s: got %s, want %s", path, got, want)
		}
	}
}

func TestNilClientAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(nil, &Config{Enabled: true, WindowDuration: time.Minute, AuthRequests: 1})
	for i := 0; i < 3; i++ {
		res, err := rl.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeAuth)
		if err != nil || !res.Allowed {
			t.Fatalf("request %d rejected: %v", i, err)
		}
	}
}

func TestMiddlewareSetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(nil, &Config{Enabled: false, WindowDuration: time.Minute, PublicRequests: 120})

	r := gin.New()
	r.Use(Middleware(rl, logger.Discard()))
	r.GET("/api/v1/venues", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/venues", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") != "120" {
		t.Errorf("limit header = %q", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := getClientIP(c); got != "203.0.113.7" {
		t.Errorf("got %s", got)
	}
}
