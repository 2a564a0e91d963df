package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance using LOG_LEVEL from the environment
func New() *Logger {
	return NewWithLevel(os.Getenv("LOG_LEVEL"))
}

// NewWithLevel creates a logger at the given level name
func NewWithLevel(levelName string) *Logger {
	level := getLogLevel(levelName)

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Discard returns a logger that drops every record, for tests
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("user_id", userID)),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogBookingConfirmed logs when a paid booking creates a confirmed event
func (l *Logger) LogBookingConfirmed(ctx context.Context, eventID, paymentID, userID string) {
	l.Logger.InfoContext(ctx,
		"Booking Confirmed",
		slog.String("event_id", eventID),
		slog.String("payment_id", paymentID),
		slog.String("user_id", userID),
	)
}

// LogEventCancelled logs when an event is cancelled
func (l *Logger) LogEventCancelled(ctx context.Context, eventID, actorID, reason string) {
	l.Logger.InfoContext(ctx,
		"Event Cancelled",
		slog.String("event_id", eventID),
		slog.String("actor_id", actorID),
		slog.String("reason", reason),
	)
}

// Payment logging methods

// LogPaymentProcessed logs the outcome of a gateway call
func (l *Logger) LogPaymentProcessed(ctx context.Context, paymentID, transactionID, method, status string, amount float64) {
	level := slog.LevelInfo
	if status == "failed" {
		level = slog.LevelWarn
	}
	l.Logger.Log(ctx, level,
		"Payment Processed",
		slog.String("payment_id", paymentID),
		slog.String("transaction_id", transactionID),
		slog.String("method", method),
		slog.String("status", status),
		slog.Float64("amount", amount),
	)
}

// LogRefund logs a completed refund
func (l *Logger) LogRefund(ctx context.Context, paymentID, refundTransactionID, actorID string, amount float64) {
	l.Logger.InfoContext(ctx,
		"Payment Refunded",
		slog.String("payment_id", paymentID),
		slog.String("refund_transaction_id", refundTransactionID),
		slog.String("actor_id", actorID),
		slog.Float64("amount", amount),
	)
}

// LogWebhook logs how an inbound gateway notification was handled
func (l *Logger) LogWebhook(ctx context.Context, transactionID, status, outcome string) {
	l.Logger.InfoContext(ctx,
		"Payment Webhook",
		slog.String("transaction_id", transactionID),
		slog.String("status", status),
		slog.String("outcome", outcome),
	)
}

// LogReconciliationRequired logs a payment that succeeded at the gateway but
// could not be linked to a booking
func (l *Logger) LogReconciliationRequired(ctx context.Context, paymentID, transactionID string, err error) {
	l.Logger.ErrorContext(ctx,
		"Payment Needs Reconciliation",
		slog.String("payment_id", paymentID),
		slog.String("transaction_id", transactionID),
		slog.String("error", err.Error()),
	)
}

// Security logging methods

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, userID, method string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("user_id", userID),
		slog.String("method", method),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Helper methods for common patterns

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
