package payments

import (
	"venuebook/internal/events"
	"venuebook/internal/shared/utils/response"
)

type PaymentList = response.Page[Payment]

// ProcessResult is a booking paid in one call. Replayed marks a response
// served from an earlier attempt with the same Idempotency-Key.
type ProcessResult struct {
	Payment   *Payment       `json:"payment"`
	Event     *events.Event  `json:"event,omitempty"`
	Breakdown *CostBreakdown `json:"breakdown"`
	Replayed  bool           `json:"replayed"`
}

type WebhookOutcome string

const (
	WebhookApplied   WebhookOutcome = "applied"
	WebhookDuplicate WebhookOutcome = "duplicate"
	WebhookIgnored   WebhookOutcome = "ignored"
	WebhookUnknown   WebhookOutcome = "unknown_transaction"
)

type WebhookResult struct {
	Outcome   WebhookOutcome `json:"outcome"`
	PaymentID string         `json:"paymentId,omitempty"`
	Status    Status         `json:"status,omitempty"`
}

type MethodInfo struct {
	Method      Method `json:"method"`
	DisplayName string `json:"displayName"`
	Kind        string `json:"kind"`
	Async       bool   `json:"async"`
}
