package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBookingConfirmed       Type = "BOOKING_CONFIRMED"
	TypeBookingPending         Type = "BOOKING_PENDING"
	TypePaymentFailed          Type = "PAYMENT_FAILED"
	TypePaymentRefunded        Type = "PAYMENT_REFUNDED"
	TypeEventCancelled         Type = "EVENT_CANCELLED"
	TypeReconciliationRequired Type = "RECONCILIATION_REQUIRED"
)

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Notification is one domain message handed to the broker after commit
type Notification struct {
	ID       uuid.UUID `json:"id"`
	Type     Type      `json:"type"`
	Priority Priority  `json:"priority"`

	RecipientID    uuid.UUID `json:"recipientId"`
	RecipientEmail string    `json:"recipientEmail,omitempty"`

	Subject string                 `json:"subject"`
	Data    map[string]interface{} `json:"data,omitempty"`

	EventID   *uuid.UUID `json:"eventId,omitempty"`
	PaymentID *uuid.UUID `json:"paymentId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type Builder struct {
	notification *Notification
}

func NewBuilder(t Type) *Builder {
	return &Builder{
		notification: &Notification{
			ID:        uuid.New(),
			Type:      t,
			Priority:  DefaultPriority(t),
			Subject:   defaultSubject(t),
			Data:      make(map[string]interface{}),
			CreatedAt: time.Now().UTC(),
		},
	}
}

func (b *Builder) WithRecipient(userID uuid.UUID, email string) *Builder {
	b.notification.RecipientID = userID
	b.notification.RecipientEmail = email
	return b
}

func (b *Builder) WithEvent(eventID uuid.UUID) *Builder {
	b.notification.EventID = &eventID
	return b
}

func (b *Builder) WithPayment(paymentID uuid.UUID) *Builder {
	b.notification.PaymentID = &paymentID
	return b
}

func (b *Builder) With(key string, value interface{}) *Builder {
	b.notification.Data[key] = value
	return b
}

func (b *Builder) Build() *Notification {
	return b.notification
}

func DefaultPriority(t Type) Priority {
	switch t {
	case TypeReconciliationRequired:
		return PriorityCritical
	case TypeBookingConfirmed, TypePaymentFailed, TypePaymentRefunded:
		return PriorityHigh
	case TypeEventCancelled:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func defaultSubject(t Type) string {
	switch t {
	case TypeBookingConfirmed:
		return "Your booking is confirmed"
	case TypeBookingPending:
		return "We are waiting for your payment provider"
	case TypePaymentFailed:
		return "Your payment could not be completed"
	case TypePaymentRefunded:
		return "Your payment has been refunded"
	case TypeEventCancelled:
		return "Your event has been cancelled"
	case TypeReconciliationRequired:
		return "Payment requires manual reconciliation"
	}
	return string(t)
}

// PartitionKey keeps one recipient's notifications ordered
func (n *Notification) PartitionKey() string {
	return n.RecipientID.String()
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
