package payments

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChargeRequest is one attempt to collect a booking's total
type ChargeRequest struct {
	PaymentID uuid.UUID
	Method    Method
	Amount    float64
	Currency  string
	Card      *CardDetails
	Wallet    *WalletDetails
}

// ChargeResult is the gateway's answer. Pending means the wallet provider
// will confirm through the webhook.
type ChargeResult struct {
	TransactionID    string
	Status           Status
	FailureReason    string
	AccountReference string
}

type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

var transactionPrefixes = map[Method]string{
	MethodCard:   "CARD",
	MethodBkash:  "BKASH",
	MethodNagad:  "NAGAD",
	MethodRocket: "ROCKET",
}

// Test accounts the simulator always declines
const (
	declinedCardSuffix   = "0002"
	declinedWalletSuffix = "0000"
)

// Simulator stands in for the card and mobile wallet processors
type Simulator struct {
	successRate  float64
	asyncWallets bool

	mu   sync.Mutex
	rand *rand.Rand
	now  func() time.Time
}

func NewSimulator(successRate float64, asyncWallets bool) *Simulator {
	return &Simulator{
		successRate:  successRate,
		asyncWallets: asyncWallets,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
	}
}

func (s *Simulator) roll() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64()
}

func (s *Simulator) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix, ok := transactionPrefixes[req.Method]
	if !ok {
		return nil, fmt.Errorf("unsupported payment method %q", req.Method)
	}

	result := &ChargeResult{
		TransactionID: NewTransactionID(prefix, s.now()),
		Status:        StatusSuccess,
	}

	switch {
	case req.Method == MethodCard && req.Card != nil:
		result.AccountReference = MaskCard(req.Card.Number)
		if reason := s.declineCard(req.Card); reason != "" {
			return result.fail(reason), nil
		}
	case req.Method.IsWallet() && req.Wallet != nil:
		result.AccountReference = MaskWallet(req.Wallet.AccountNumber)
		if strings.HasSuffix(req.Wallet.AccountNumber, declinedWalletSuffix) {
			return result.fail("insufficient wallet balance"), nil
		}
	default:
		return result.fail("payment details missing"), nil
	}

	if s.roll() >= s.successRate {
		return result.fail("payment declined by provider"), nil
	}

	if req.Method.IsWallet() && s.asyncWallets {
		result.Status = StatusPending
	}
	return result, nil
}

func (s *Simulator) declineCard(card *CardDetails) string {
	if strings.HasSuffix(card.Number, declinedCardSuffix) {
		return "card declined by issuer"
	}
	now := s.now()
	if card.ExpiryYear < now.Year() || (card.ExpiryYear == now.Year() && card.ExpiryMonth < int(now.Month())) {
		return "card expired"
	}
	return ""
}

func (r *ChargeResult) fail(reason string) *ChargeResult {
	r.Status = StatusFailed
	r.FailureReason = reason
	return r
}

// NewTransactionID builds a gateway reference such as CARD_1767225600000_9F2C41AB
func NewTransactionID(prefix string, at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s_%d_%s", prefix, at.UnixMilli(), suffix)
}

// MaskCard keeps the last four digits
func MaskCard(number string) string {
	if len(number) < 4 {
		return "****"
	}
	return "**** **** **** " + number[len(number)-4:]
}

// MaskWallet keeps the operator prefix and the last two digits
func MaskWallet(account string) string {
	if len(account) < 6 {
		return "******"
	}
	return account[:3] + strings.Repeat("*", len(account)-5) + account[len(account)-2:]
}
