package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"venuebook/internal/shared/utils/response"
	"venuebook/pkg/logger"
)

// Middleware enforces the limiter per client IP and route class. Redis
// failures let the request through.
func Middleware(rateLimiter *RateLimiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			log.WarnContext(c.Request.Context(), "rate limit check failed", "error", err, "type", string(limitType))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			log.LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			response.AbortWithError(c, http.StatusTooManyRequests, "Rate limit exceeded", gin.H{
				"limit":     result.Limit,
				"resetTime": result.ResetTime,
			})
			return
		}

		c.Next()
	}
}

// getRateLimitType classifies a route template
func getRateLimitType(path string) RateLimitType {
	switch {
	case path == "/health", path == "/ping":
		return RateLimitTypeHealth

	case strings.HasSuffix(path, "/payments/webhook"):
		return RateLimitTypeWebhook

	case strings.Contains(path, "/admin/analytics"):
		return RateLimitTypeAnalytics

	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin

	case strings.HasSuffix(path, "/login"),
		strings.HasSuffix(path, "/register"),
		strings.HasSuffix(path, "/refresh"),
		strings.HasSuffix(path, "/change-password"):
		return RateLimitTypeAuth

	case strings.Contains(path, "/payments"):
		return RateLimitTypePayment

	case strings.Contains(path, "/venues"),
		strings.Contains(path, "/meals"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// getClientIP extracts real client IP
func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := c.GetHeader("X-Real-IP"); xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}
