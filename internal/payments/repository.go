package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"venuebook/internal/events"
	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/database/pgerrors"
	"venuebook/internal/shared/pagination"
	"venuebook/internal/venues"
)

// ErrDuplicateIdempotencyKey is returned by Create when the customer already
// used the key
var ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")

var listSort = pagination.SortSpec{
	Fields: map[string]string{
		"id":        "id",
		"amount":    "amount",
		"createdAt": "created_at",
		"status":    "status",
	},
	DefaultField: "createdAt",
	DefaultOrder: "desc",
}

// Settlement records what the gateway said about a payment
type Settlement struct {
	Status           Status
	TransactionID    string
	AccountReference string
	FailureReason    string
	At               time.Time
}

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
	List(ctx context.Context, q pagination.Query, f Filters, ownerID *uuid.UUID) ([]Payment, int64, error)

	// CompleteBooking creates the event and settles the payment atomically
	CompleteBooking(ctx context.Context, paymentID uuid.UUID, event *events.Event, s Settlement) error
	MarkFailed(ctx context.Context, paymentID uuid.UUID, s Settlement) error
	FlagReconciliation(ctx context.Context, paymentID uuid.UUID, s Settlement, reason string) error
	MarkRefunded(ctx context.Context, paymentID uuid.UUID, refundTransactionID, reason string, at time.Time) error
	// ApplyWebhook moves a payment and its pending event together
	ApplyWebhook(ctx context.Context, payment *Payment, to Status, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, payment *Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *repository) findOne(ctx context.Context, query string, args ...interface{}) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where(query, args...).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment")
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &payment, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *repository) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*Payment, error) {
	return r.findOne(ctx, "user_id = ? AND idempotency_key = ?", userID, key)
}

func (r *repository) FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error) {
	return r.findOne(ctx, "transaction_id = ?", transactionID)
}

func (r *repository) List(ctx context.Context, q pagination.Query, f Filters, ownerID *uuid.UUID) ([]Payment, int64, error) {
	query := ApplyFilters(r.db.WithContext(ctx).Model(&Payment{}), q, f, ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	paged, err := pagination.Apply(query, q, listSort)
	if err != nil {
		return nil, 0, err
	}

	var payments []Payment
	if err := paged.Find(&payments).Error; err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	return payments, total, nil
}

// ApplyFilters adds the predicates of a payment listing. A non-nil ownerID
// restricts it to one customer.
func ApplyFilters(db *gorm.DB, q pagination.Query, f Filters, ownerID *uuid.UUID) *gorm.DB {
	if ownerID != nil {
		db = db.Where("user_id = ?", *ownerID)
	}
	if q.Search != "" {
		db = db.Where("transaction_id ILIKE ?", pagination.LikePattern(q.Search))
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Method != "" {
		db = db.Where("method = ?", f.Method)
	}
	if f.NeedsReconciliation != nil {
		db = db.Where("needs_reconciliation = ?", *f.NeedsReconciliation)
	}
	if !f.From.IsZero() {
		db = db.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		db = db.Where("created_at < ?", f.To)
	}
	return db
}

func (r *repository) CompleteBooking(ctx context.Context, paymentID uuid.UUID, event *events.Event, s Settlement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Bookings for one venue queue behind this row lock
		var venue venues.Venue
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "is_active").
			First(&venue, "id = ?", event.VenueID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("venue")
			}
			return fmt.Errorf("lock venue: %w", err)
		}
		if !venue.IsActive {
			return apperrors.BusinessRule("venue is not accepting bookings")
		}

		conflicts, err := events.Overlapping(tx, event.VenueID, event.StartTime, event.EndTime)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return apperrors.Conflict("venue is already booked for the requested time")
		}

		if err := tx.Omit(clause.Associations).Create(event).Error; err != nil {
			if pgerrors.IsExclusionViolation(err) {
				return apperrors.Conflict("venue is already booked for the requested time")
			}
			return fmt.Errorf("create event: %w", err)
		}

		result := tx.Model(&Payment{}).
			Where("id = ? AND status = ?", paymentID, StatusPending).
			Updates(map[string]interface{}{
				"event_id":          event.ID,
				"status":            s.Status,
				"transaction_id":    s.TransactionID,
				"account_reference": s.AccountReference,
				"processed_at":      s.At,
			})
		if result.Error != nil {
			return fmt.Errorf("settle payment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.PaymentState("payment is no longer pending")
		}
		return nil
	})
}

func (r *repository) MarkFailed(ctx context.Context, paymentID uuid.UUID, s Settlement) error {
	updates := map[string]interface{}{
		"status":            StatusFailed,
		"failure_reason":    s.FailureReason,
		"account_reference": s.AccountReference,
		"processed_at":      s.At,
	}
	if s.TransactionID != "" {
		updates["transaction_id"] = s.TransactionID
	}

	err := r.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ? AND status = ?", paymentID, StatusPending).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	return nil
}

// FlagReconciliation records a charge the booking transaction could not keep
func (r *repository) FlagReconciliation(ctx context.Context, paymentID uuid.UUID, s Settlement, reason string) error {
	updates := map[string]interface{}{
		"status":               s.Status,
		"account_reference":    s.AccountReference,
		"failure_reason":       reason,
		"needs_reconciliation": true,
		"processed_at":         s.At,
	}
	if s.TransactionID != "" {
		updates["transaction_id"] = s.TransactionID
	}

	err := r.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ?", paymentID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("flag payment for reconciliation: %w", err)
	}
	return nil
}

func (r *repository) MarkRefunded(ctx context.Context, paymentID uuid.UUID, refundTransactionID, reason string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ? AND status = ?", paymentID, StatusSuccess).
		Updates(map[string]interface{}{
			"status":                StatusRefunded,
			"refund_transaction_id": refundTransactionID,
			"refund_reason":         reason,
			"refunded_at":           at,
		})
	if result.Error != nil {
		return fmt.Errorf("refund payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.PaymentState("payment is no longer refundable")
	}
	return nil
}

func (r *repository) ApplyWebhook(ctx context.Context, payment *Payment, to Status, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": to}
		switch to {
		case StatusFailed:
			updates["failure_reason"] = "declined by provider"
		case StatusRefunded:
			updates["refund_transaction_id"] = NewTransactionID(refundPrefix, at)
			updates["refund_reason"] = "refunded by provider"
			updates["refunded_at"] = at
		}

		result := tx.Model(&Payment{}).
			Where("id = ? AND status = ?", payment.ID, payment.Status).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("apply webhook: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("payment status changed concurrently")
		}

		if payment.EventID == nil {
			return nil
		}

		var event events.Event
		if err := tx.Select("id", "status").First(&event, "id = ?", *payment.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("load event: %w", err)
		}
		if event.Status != events.StatusPending {
			return nil
		}

		switch to {
		case StatusSuccess:
			return events.Transition(tx, event.ID, events.StatusPending, events.StatusConfirmed, "")
		case StatusFailed:
			return events.Transition(tx, event.ID, events.StatusPending, events.StatusCancelled, "payment failed")
		}
		return nil
	})
}
