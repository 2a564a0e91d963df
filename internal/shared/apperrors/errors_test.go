package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromKeepsDomainErrorThroughWrapping(t *testing.T) {
	base := PaymentState("payment is not refundable")
	wrapped := fmt.Errorf("refund payment: %w", base)

	got := From(wrapped)
	if got.Kind != KindPaymentState {
		t.Fatalf("kind = %s, want %s", got.Kind, KindPaymentState)
	}
	if got.Status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", got.Status)
	}
	if !errors.Is(wrapped, ErrPaymentState) {
		t.Error("errors.Is should match on kind")
	}
}

func TestFromUnknownErrorIsInternal(t *testing.T) {
	got := From(errors.New("connection reset"))
	if got.Kind != KindInternal || got.Status != http.StatusInternalServerError {
		t.Fatalf("got %s/%d, want internal/500", got.Kind, got.Status)
	}
	if got.Message != "internal server error" {
		t.Errorf("message leaked: %q", got.Message)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Field("endTime", "endTime must be after startTime"), http.StatusBadRequest},
		{Unauthorized("missing token"), http.StatusUnauthorized},
		{Forbidden("insufficient permissions"), http.StatusForbidden},
		{NotFound("venue"), http.StatusNotFound},
		{Conflict("email already registered"), http.StatusConflict},
		{PaymentFailed("card declined"), http.StatusPaymentRequired},
		{BusinessRule("venue inactive"), http.StatusUnprocessableEntity},
		{Reconciliation("event not stored", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.Status != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.err.Kind, tc.err.Status, tc.want)
		}
	}
}

func TestFieldCarriesDetails(t *testing.T) {
	err := Field("endTime", "endTime must be after startTime")
	fields, ok := err.Details.([]FieldError)
	if !ok || len(fields) != 1 || fields[0].Field != "endTime" {
		t.Fatalf("details = %#v", err.Details)
	}
}
