package payments

import (
	"time"

	"github.com/google/uuid"

	"venuebook/internal/events"
)

type Method string

const (
	MethodCard   Method = "card"
	MethodBkash  Method = "bkash"
	MethodNagad  Method = "nagad"
	MethodRocket Method = "rocket"
)

// IsWallet reports a mobile financial service account
func (m Method) IsWallet() bool {
	return m == MethodBkash || m == MethodNagad || m == MethodRocket
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

// CanTransitionTo lists the moves a payment may make after it was recorded
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusSuccess || next == StatusFailed
	case StatusSuccess:
		return next == StatusRefunded
	}
	return false
}

// BookingSnapshot is the booking request and the cost it was charged at
type BookingSnapshot struct {
	Title       string        `json:"title,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	StartTime   time.Time     `json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	PeopleCount int           `json:"peopleCount"`
	Breakdown   CostBreakdown `json:"breakdown"`
	Fingerprint string        `json:"fingerprint"`
}

type Payment struct {
	ID      uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID *uuid.UUID `json:"eventId,omitempty" gorm:"type:uuid;index"`
	UserID  uuid.UUID  `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:idx_payments_user_idempotency,priority:1"`
	VenueID uuid.UUID  `json:"venueId" gorm:"type:uuid;not null;index"`
	MealID  *uuid.UUID `json:"mealId,omitempty" gorm:"type:uuid"`

	Amount   float64 `json:"amount" gorm:"type:numeric(12,2);not null;check:amount >= 0"`
	Currency string  `json:"currency" gorm:"size:3;not null;default:'BDT'"`
	Method   Method  `json:"method" gorm:"type:varchar(10);not null;index"`
	Status   Status  `json:"status" gorm:"type:varchar(10);not null;default:'pending';index"`

	TransactionID    *string `json:"transactionId,omitempty" gorm:"size:64;uniqueIndex"`
	IdempotencyKey   *string `json:"-" gorm:"size:100;uniqueIndex:idx_payments_user_idempotency,priority:2"`
	AccountReference string  `json:"accountReference,omitempty" gorm:"size:32"`
	FailureReason    string  `json:"failureReason,omitempty" gorm:"size:500"`

	RefundTransactionID *string    `json:"refundTransactionId,omitempty" gorm:"size:64;uniqueIndex"`
	RefundReason        string     `json:"refundReason,omitempty" gorm:"size:500"`
	RefundedAt          *time.Time `json:"refundedAt,omitempty"`

	NeedsReconciliation bool             `json:"needsReconciliation" gorm:"not null;default:false"`
	BookingSnapshot     *BookingSnapshot `json:"bookingSnapshot,omitempty" gorm:"type:jsonb;serializer:json"`

	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`

	Event *events.Event `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL"`
}

// InFlight reports a claimed attempt whose gateway call has not been recorded
func (p *Payment) InFlight() bool {
	return p.Status == StatusPending && p.ProcessedAt == nil
}

// Filters narrows payment listings
type Filters struct {
	Status              string    `form:"status" validate:"omitempty,oneof=pending success failed refunded"`
	Method              string    `form:"method" validate:"omitempty,oneof=card bkash nagad rocket"`
	NeedsReconciliation *bool     `form:"needsReconciliation"`
	From                time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To                  time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}
