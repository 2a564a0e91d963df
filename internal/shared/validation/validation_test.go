package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"venuebook/internal/shared/apperrors"
)

type slotRequest struct {
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	PeopleCount int       `json:"peopleCount" validate:"required,min=1,max=10000"`
	Phone       string    `json:"phone" validate:"omitempty,bdmobile"`
}

func fieldsOf(t *testing.T, err error) []apperrors.FieldError {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error, got %T (%v)", err, err)
	}
	if appErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", appErr.Status)
	}
	fields, _ := appErr.Details.([]apperrors.FieldError)
	return fields
}

func TestEndTimeMustBeAfterStartTime(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for _, end := range []time.Time{start, start.Add(-time.Hour)} {
		err := Default().Struct(&slotRequest{StartTime: start, EndTime: end, PeopleCount: 10})
		fields := fieldsOf(t, err)
		if len(fields) != 1 || fields[0].Field != "endTime" {
			t.Fatalf("fields = %#v, want a single endTime error", fields)
		}
		if fields[0].Message != "endTime must be after startTime" {
			t.Errorf("message = %q", fields[0].Message)
		}
	}

	if err := Default().Struct(&slotRequest{StartTime: start, EndTime: start.Add(time.Minute), PeopleCount: 10}); err != nil {
		t.Fatalf("valid slot rejected: %v", err)
	}
}

func TestPeopleCountBounds(t *testing.T) {
	start := time.Now()
	err := Default().Struct(&slotRequest{StartTime: start, EndTime: start.Add(time.Hour), PeopleCount: 10001})
	fields := fieldsOf(t, err)
	if len(fields) != 1 || fields[0].Field != "peopleCount" {
		t.Fatalf("fields = %#v", fields)
	}
}

func TestBangladeshiMobile(t *testing.T) {
	start := time.Now()
	base := slotRequest{StartTime: start, EndTime: start.Add(time.Hour), PeopleCount: 2}

	for _, ok := range []string{"01712345678", "+8801712345678", "8801912345678"} {
		req := base
		req.Phone = ok
		if err := Default().Struct(&req); err != nil {
			t.Errorf("%s rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"01212345678", "12345", "0171234567a"} {
		req := base
		req.Phone = bad
		if err := Default().Struct(&req); err == nil {
			t.Errorf("%s accepted", bad)
		}
	}
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"peopleCount": "many"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req slotRequest
	err := Default().BindJSON(c, &req)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
