package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"venuebook/internal/events"
	"venuebook/internal/meals"
	"venuebook/internal/notifications"
	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/middleware"
	"venuebook/internal/shared/pagination"
	"venuebook/internal/shared/utils/response"
	"venuebook/internal/venues"
	"venuebook/pkg/logger"
)

const (
	refundPrefix         = "RFD"
	maxIdempotencyKeyLen = 100
	minRefundReasonLen   = 10
	amountTolerance      = 0.005
)

type Service interface {
	Methods() []MethodInfo
	CalculateCost(ctx context.Context, req *CostRequest) (*CostBreakdown, error)
	Process(ctx context.Context, actor *middleware.Principal, idempotencyKey string, req *ProcessPaymentRequest) (*ProcessResult, error)
	Refund(ctx context.Context, actor *middleware.Principal, id string, req *RefundRequest) (*Payment, error)
	HandleWebhook(ctx context.Context, payload *WebhookPayload) (*WebhookResult, error)

	List(ctx context.Context, viewer *middleware.Principal, q pagination.Query, f Filters) (*PaymentList, error)
	GetByID(ctx context.Context, viewer *middleware.Principal, id string) (*Payment, error)
}

type service struct {
	repo     Repository
	venues   venues.Repository
	meals    meals.Repository
	events   events.Service
	gateway  Gateway
	notifier notifications.Service
	calc     Calculator
	cfg      config.PaymentConfig
	log      *logger.Logger
	now      func() time.Time
}

func NewService(
	repo Repository,
	venueRepo venues.Repository,
	mealRepo meals.Repository,
	eventService events.Service,
	gateway Gateway,
	notifier notifications.Service,
	cfg config.PaymentConfig,
	log *logger.Logger,
) Service {
	return &service{
		repo:     repo,
		venues:   venueRepo,
		meals:    mealRepo,
		events:   eventService,
		gateway:  gateway,
		notifier: notifier,
		calc: Calculator{
			TaxRate:        cfg.TaxRate,
			ServiceFeeRate: cfg.ServiceFeeRate,
			Currency:       cfg.Currency,
		},
		cfg: cfg,
		log: log,
		now: time.Now,
	}
}

func parseID(id, field string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.Field(field, field+" must be a valid UUID")
	}
	return parsed, nil
}

func (s *service) Methods() []MethodInfo {
	return []MethodInfo{
		{Method: MethodCard, DisplayName: "Credit / Debit Card", Kind: "card"},
		{Method: MethodBkash, DisplayName: "bKash", Kind: "wallet", Async: s.cfg.AsyncWallets},
		{Method: MethodNagad, DisplayName: "Nagad", Kind: "wallet", Async: s.cfg.AsyncWallets},
		{Method: MethodRocket, DisplayName: "Rocket", Kind: "wallet", Async: s.cfg.AsyncWallets},
	}
}

// quote loads the catalog entries a request refers to and prices them
func (s *service) quote(ctx context.Context, req *CostRequest) (*CostBreakdown, *venues.Venue, *meals.Meal, error) {
	if req.PeopleCount < s.cfg.MinPeople || req.PeopleCount > s.cfg.MaxPeople {
		return nil, nil, nil, apperrors.Field("peopleCount",
			fmt.Sprintf("peopleCount must be between %d and %d", s.cfg.MinPeople, s.cfg.MaxPeople))
	}

	venueID, err := parseID(req.VenueID, "venueId")
	if err != nil {
		return nil, nil, nil, err
	}
	venue, err := s.venues.FindByID(ctx, venueID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !venue.IsActive {
		return nil, nil, nil, apperrors.BusinessRule("venue is not accepting bookings")
	}

	var meal *meals.Meal
	if req.MealID != "" {
		mealID, err := parseID(req.MealID, "mealId")
		if err != nil {
			return nil, nil, nil, err
		}
		meal, err = s.meals.FindByID(ctx, mealID)
		if err != nil {
			return nil, nil, nil, err
		}
		if !meal.IsAvailable {
			return nil, nil, nil, apperrors.BusinessRule("meal is not available")
		}
	}

	breakdown, err := s.calc.Calculate(venue, meal, req.PeopleCount, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, nil, err
	}
	return breakdown, venue, meal, nil
}

func (s *service) CalculateCost(ctx context.Context, req *CostRequest) (*CostBreakdown, error) {
	breakdown, _, _, err := s.quote(ctx, req)
	return breakdown, err
}

func validateDetails(req *ProcessPaymentRequest) error {
	switch {
	case req.PaymentMethod == MethodCard && req.Card == nil:
		return apperrors.Field("card", "card details are required for card payments")
	case req.PaymentMethod.IsWallet() && req.Wallet == nil:
		return apperrors.Field("wallet", "wallet details are required for "+string(req.PaymentMethod)+" payments")
	}
	return nil
}

// fingerprint identifies the booking an Idempotency-Key was first used for
func fingerprint(req *ProcessPaymentRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%s|%s|%s",
		req.VenueID,
		req.MealID,
		req.PeopleCount,
		req.StartTime.UTC().Format(time.RFC3339),
		req.EndTime.UTC().Format(time.RFC3339),
		req.PaymentMethod,
	)
	return hex.EncodeToString(h.Sum(nil))
}

// Process charges the customer and books the slot. The attempt is claimed
// under the Idempotency-Key before the gateway is called, so a retried
// request never charges twice.
func (s *service) Process(ctx context.Context, actor *middleware.Principal, idempotencyKey string, req *ProcessPaymentRequest) (*ProcessResult, error) {
	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		return nil, apperrors.Field("Idempotency-Key", "Idempotency-Key header is required")
	}
	if len(key) > maxIdempotencyKeyLen {
		return nil, apperrors.Field("Idempotency-Key", fmt.Sprintf("Idempotency-Key must be at most %d characters", maxIdempotencyKeyLen))
	}

	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid account")
	}
	fp := fingerprint(req)

	existing, err := s.repo.FindByIdempotencyKey(ctx, userID, key)
	switch {
	case err == nil:
		return s.replay(existing, fp)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	if err := validateDetails(req); err != nil {
		return nil, err
	}

	breakdown, venue, meal, err := s.quote(ctx, req.cost())
	if err != nil {
		return nil, err
	}
	if err := s.events.EnsureBookable(ctx, venue, req.StartTime, req.EndTime, req.PeopleCount); err != nil {
		return nil, err
	}

	payment := &Payment{
		UserID:         userID,
		VenueID:        venue.ID,
		Amount:         breakdown.Total,
		Currency:       breakdown.Currency,
		Method:         req.PaymentMethod,
		Status:         StatusPending,
		IdempotencyKey: &key,
		BookingSnapshot: &BookingSnapshot{
			Title:       req.Title,
			Notes:       req.Notes,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			PeopleCount: req.PeopleCount,
			Breakdown:   *breakdown,
			Fingerprint: fp,
		},
	}
	if meal != nil {
		payment.MealID = &meal.ID
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		if errors.Is(err, ErrDuplicateIdempotencyKey) {
			existing, err := s.repo.FindByIdempotencyKey(ctx, userID, key)
			if err != nil {
				return nil, err
			}
			return s.replay(existing, fp)
		}
		return nil, err
	}

	charge, err := s.gateway.Charge(ctx, ChargeRequest{
		PaymentID: payment.ID,
		Method:    req.PaymentMethod,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Card:      req.Card,
		Wallet:    req.Wallet,
	})
	if err != nil {
		s.log.ErrorWithContext(ctx, "payment gateway error", err, map[string]interface{}{"payment_id": payment.ID.String()})
		charge = &ChargeResult{Status: StatusFailed, FailureReason: "payment provider unavailable"}
	}

	settlement := Settlement{
		Status:           charge.Status,
		TransactionID:    charge.TransactionID,
		AccountReference: charge.AccountReference,
		FailureReason:    charge.FailureReason,
		At:               s.now().UTC(),
	}
	s.log.LogPaymentProcessed(ctx, payment.ID.String(), charge.TransactionID, string(payment.Method), string(charge.Status), payment.Amount)

	if charge.Status == StatusFailed {
		return nil, s.fail(ctx, actor, payment, settlement)
	}
	return s.book(ctx, actor, payment, breakdown, settlement)
}

// fail records a declined charge. If the decline cannot be written the row is
// flagged instead, so the Idempotency-Key replays the decline rather than
// staying in flight.
func (s *service) fail(ctx context.Context, actor *middleware.Principal, payment *Payment, settlement Settlement) error {
	if err := s.repo.MarkFailed(ctx, payment.ID, settlement); err != nil {
		s.log.LogReconciliationRequired(ctx, payment.ID.String(), settlement.TransactionID, err)
		if flagErr := s.repo.FlagReconciliation(ctx, payment.ID, settlement, settlement.FailureReason); flagErr != nil {
			s.log.ErrorWithContext(ctx, "failed to record declined payment", errors.Join(err, flagErr), map[string]interface{}{
				"payment_id":     payment.ID.String(),
				"transaction_id": settlement.TransactionID,
			})
		}
	}

	s.notifier.Notify(ctx, notifications.NewBuilder(notifications.TypePaymentFailed).
		WithRecipient(payment.UserID, actor.Email).
		WithPayment(payment.ID).
		With("reason", settlement.FailureReason).
		With("amount", payment.Amount).
		Build())

	return apperrors.PaymentFailed(settlement.FailureReason).WithDetails(map[string]interface{}{
		"paymentId":     payment.ID,
		"transactionId": settlement.TransactionID,
	})
}

// book turns an accepted charge into an event. A charge that cannot be kept
// is flagged for manual reconciliation rather than lost.
func (s *service) book(ctx context.Context, actor *middleware.Principal, payment *Payment, breakdown *CostBreakdown, settlement Settlement) (*ProcessResult, error) {
	snap := payment.BookingSnapshot
	event := &events.Event{
		UserID:      payment.UserID,
		VenueID:     payment.VenueID,
		MealID:      payment.MealID,
		Title:       snap.Title,
		Notes:       snap.Notes,
		StartTime:   snap.StartTime,
		EndTime:     snap.EndTime,
		PeopleCount: snap.PeopleCount,
		Status:      events.StatusConfirmed,
		VenueCost:   breakdown.VenueCost,
		MealCost:    breakdown.MealCost,
		Subtotal:    breakdown.Subtotal,
		Tax:         breakdown.Tax,
		ServiceFee:  breakdown.ServiceFee,
		TotalAmount: breakdown.Total,
		Currency:    breakdown.Currency,
	}
	if settlement.Status == StatusPending {
		event.Status = events.StatusPending
	}

	if err := s.repo.CompleteBooking(ctx, payment.ID, event, settlement); err != nil {
		return nil, s.reconcile(ctx, payment, settlement, err)
	}

	notification := notifications.TypeBookingConfirmed
	if event.Status == events.StatusPending {
		notification = notifications.TypeBookingPending
	}
	s.log.LogBookingConfirmed(ctx, event.ID.String(), payment.ID.String(), payment.UserID.String())
	s.notifier.Notify(ctx, notifications.NewBuilder(notification).
		WithRecipient(payment.UserID, actor.Email).
		WithEvent(event.ID).
		WithPayment(payment.ID).
		With("transactionId", settlement.TransactionID).
		With("amount", payment.Amount).
		With("startTime", event.StartTime).
		Build())

	saved, err := s.repo.FindByID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	return &ProcessResult{Payment: saved, Event: event, Breakdown: breakdown}, nil
}

func (s *service) reconcile(ctx context.Context, payment *Payment, settlement Settlement, cause error) error {
	s.log.LogReconciliationRequired(ctx, payment.ID.String(), settlement.TransactionID, cause)

	flagErr := s.repo.FlagReconciliation(ctx, payment.ID, settlement, cause.Error())
	if flagErr != nil {
		s.log.ErrorWithContext(ctx, "failed to flag payment for reconciliation", flagErr, map[string]interface{}{
			"payment_id":     payment.ID.String(),
			"transaction_id": settlement.TransactionID,
		})
	}

	s.notifier.Notify(ctx, notifications.NewBuilder(notifications.TypeReconciliationRequired).
		WithRecipient(payment.UserID, "").
		WithPayment(payment.ID).
		With("transactionId", settlement.TransactionID).
		With("amount", payment.Amount).
		With("cause", cause.Error()).
		Build())

	details := map[string]interface{}{
		"paymentId":     payment.ID,
		"transactionId": settlement.TransactionID,
	}
	var appErr *apperrors.Error
	if errors.As(cause, &appErr) && appErr.Kind == apperrors.KindConflict {
		details["reason"] = appErr.Message
	}
	return apperrors.Reconciliation(
		"payment was captured but the booking could not be saved; it has been flagged for reconciliation",
		errors.Join(cause, flagErr),
	).WithDetails(details)
}

// replay answers a repeated Idempotency-Key with the first attempt's outcome
func (s *service) replay(payment *Payment, fp string) (*ProcessResult, error) {
	if snap := payment.BookingSnapshot; snap != nil && snap.Fingerprint != "" && snap.Fingerprint != fp {
		return nil, apperrors.BusinessRule("Idempotency-Key was already used for a different booking")
	}

	details := map[string]interface{}{"paymentId": payment.ID, "replayed": true}
	switch {
	case payment.InFlight():
		return nil, apperrors.Conflict("a payment with this Idempotency-Key is still being processed")
	case payment.Status == StatusFailed:
		return nil, apperrors.PaymentFailed(payment.FailureReason).WithDetails(details)
	case payment.NeedsReconciliation:
		return nil, apperrors.Reconciliation("payment is awaiting reconciliation", nil).WithDetails(details)
	}

	result := &ProcessResult{Payment: payment, Event: payment.Event, Replayed: true}
	if payment.BookingSnapshot != nil {
		breakdown := payment.BookingSnapshot.Breakdown
		result.Breakdown = &breakdown
	}
	return result, nil
}

func (s *service) Refund(ctx context.Context, actor *middleware.Principal, id string, req *RefundRequest) (*Payment, error) {
	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) < minRefundReasonLen {
		return nil, apperrors.Field("reason", fmt.Sprintf("reason must be at least %d characters", minRefundReasonLen))
	}

	payment, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != StatusSuccess {
		return nil, apperrors.PaymentState(fmt.Sprintf("only successful payments can be refunded; payment is %s", payment.Status))
	}

	at := s.now().UTC()
	refundID := NewTransactionID(refundPrefix, at)
	if err := s.repo.MarkRefunded(ctx, payment.ID, refundID, reason, at); err != nil {
		return nil, err
	}

	s.log.LogRefund(ctx, payment.ID.String(), refundID, actor.UserID, payment.Amount)
	s.notifier.Notify(ctx, notifications.NewBuilder(notifications.TypePaymentRefunded).
		WithRecipient(payment.UserID, "").
		WithPayment(payment.ID).
		With("refundTransactionId", refundID).
		With("amount", payment.Amount).
		With("reason", reason).
		Build())

	return s.repo.FindByID(ctx, payment.ID)
}

// HandleWebhook applies a signed provider status update. Unknown
// transactions are acknowledged so the provider stops retrying.
func (s *service) HandleWebhook(ctx context.Context, payload *WebhookPayload) (*WebhookResult, error) {
	if !VerifyWebhook(s.cfg.WebhookSecret, payload) {
		s.log.LogWebhook(ctx, payload.TransactionID, string(payload.Status), "invalid_signature")
		return nil, apperrors.Unauthorized("invalid webhook signature")
	}

	payment, err := s.repo.FindByTransactionID(ctx, payload.TransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.log.LogWebhook(ctx, payload.TransactionID, string(payload.Status), string(WebhookUnknown))
			return &WebhookResult{Outcome: WebhookUnknown}, nil
		}
		return nil, err
	}

	result := &WebhookResult{PaymentID: payment.ID.String(), Status: payment.Status}
	if math.Abs(payment.Amount-payload.Amount) > amountTolerance {
		s.log.LogWebhook(ctx, payload.TransactionID, string(payload.Status), "amount_mismatch")
		return nil, apperrors.BusinessRule(fmt.Sprintf("webhook amount %.2f does not match payment amount %.2f", payload.Amount, payment.Amount))
	}

	switch {
	case payment.Status == payload.Status:
		result.Outcome = WebhookDuplicate
	case !payment.Status.CanTransitionTo(payload.Status):
		result.Outcome = WebhookIgnored
	default:
		if err := s.repo.ApplyWebhook(ctx, payment, payload.Status, s.now().UTC()); err != nil {
			return nil, err
		}
		result.Outcome = WebhookApplied
		result.Status = payload.Status
		s.notifyWebhook(ctx, payment, payload.Status)
	}

	s.log.LogWebhook(ctx, payload.TransactionID, string(payload.Status), string(result.Outcome))
	return result, nil
}

func (s *service) notifyWebhook(ctx context.Context, payment *Payment, to Status) {
	var t notifications.Type
	switch to {
	case StatusSuccess:
		t = notifications.TypeBookingConfirmed
	case StatusFailed:
		t = notifications.TypePaymentFailed
	case StatusRefunded:
		t = notifications.TypePaymentRefunded
	default:
		return
	}

	b := notifications.NewBuilder(t).
		WithRecipient(payment.UserID, "").
		WithPayment(payment.ID).
		With("amount", payment.Amount)
	if payment.EventID != nil {
		b = b.WithEvent(*payment.EventID)
	}
	s.notifier.Notify(ctx, b.Build())
}

func (s *service) List(ctx context.Context, viewer *middleware.Principal, q pagination.Query, f Filters) (*PaymentList, error) {
	q.Normalize()
	if !f.From.IsZero() && !f.To.IsZero() && !f.To.After(f.From) {
		return nil, apperrors.Field("to", "to must be after from")
	}

	var ownerID *uuid.UUID
	if !constants.IsStaff(viewer.Role) {
		id, err := uuid.Parse(viewer.UserID)
		if err != nil {
			return nil, apperrors.Unauthorized("invalid account")
		}
		ownerID = &id
	}

	items, total, err := s.repo.List(ctx, q, f, ownerID)
	if err != nil {
		return nil, err
	}
	page := response.NewPage(items, q.Page, q.Limit, total)
	return &page, nil
}

// GetByID hides other customers' payments behind a 404
func (s *service) GetByID(ctx context.Context, viewer *middleware.Principal, id string) (*Payment, error) {
	paymentID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !constants.IsStaff(viewer.Role) && payment.UserID.String() != viewer.UserID {
		return nil, apperrors.NotFound("payment")
	}
	return payment, nil
}
