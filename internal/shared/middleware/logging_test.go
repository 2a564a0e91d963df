package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"venuebook/pkg/logger"
)

func newLoggedEngine(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := &logger.Logger{Logger: slog.New(slog.NewJSONHandler(buf, nil))}

	table := NewPolicyTable("/api/v1", Rule{Method: http.MethodGet, Path: "/events"})
	r := gin.New()
	r.Use(RequestLogger(log), ErrorHandler(logger.Discard(), false))
	api := r.Group("/api/v1")
	api.Use(Guard(tokens, table))
	api.GET("/events", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRequestLoggerTagsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedEngine(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Authorization", "Bearer customer-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	requestID := w.Header().Get(RequestIDHeader)
	if requestID == "" {
		t.Fatal("response carries no request id")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log %q: %v", buf.String(), err)
	}
	if entry["request_id"] != requestID {
		t.Errorf("request_id = %v, want %s", entry["request_id"], requestID)
	}
	if entry["user_id"] != "u1" {
		t.Errorf("user_id = %v, want u1", entry["user_id"])
	}
	if entry["status"] != float64(http.StatusNoContent) {
		t.Errorf("status = %v", entry["status"])
	}
}

func TestRequestLoggerKeepsCallerRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedEngine(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set(RequestIDHeader, "trace-abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "trace-abc-123" {
		t.Errorf("request id = %q", got)
	}
	if bytes.Contains(buf.Bytes(), []byte(`"user_id"`)) {
		t.Errorf("anonymous request logged with a user: %s", buf.String())
	}
}
