package payments

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testSimulator(successRate float64, async bool) *Simulator {
	s := NewSimulator(successRate, async)
	s.rand = rand.New(rand.NewSource(1))
	s.now = func() time.Time { return time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC) }
	return s
}

func validCard() *CardDetails {
	return &CardDetails{Number: "4242424242424242", ExpiryMonth: 12, ExpiryYear: 2030, CVV: "123", HolderName: "Nadia Rahman"}
}

func TestSimulatorCharges(t *testing.T) {
	tests := []struct {
		name   string
		req    ChargeRequest
		async  bool
		status Status
		prefix string
		reason string
	}{
		{"card success", ChargeRequest{Method: MethodCard, Card: validCard()}, false, StatusSuccess, "CARD_", ""},
		{"declined card", ChargeRequest{Method: MethodCard, Card: &CardDetails{Number: "4000000000000002", ExpiryMonth: 1, ExpiryYear: 2030}}, false, StatusFailed, "CARD_", "card declined by issuer"},
		{"expired card", ChargeRequest{Method: MethodCard, Card: &CardDetails{Number: "4242424242424242", ExpiryMonth: 10, ExpiryYear: 2026}}, false, StatusFailed, "CARD_", "card expired"},
		{"bkash success", ChargeRequest{Method: MethodBkash, Wallet: &WalletDetails{AccountNumber: "01712345678"}}, false, StatusSuccess, "BKASH_", ""},
		{"nagad empty wallet", ChargeRequest{Method: MethodNagad, Wallet: &WalletDetails{AccountNumber: "01812340000"}}, false, StatusFailed, "NAGAD_", "insufficient wallet balance"},
		{"rocket async", ChargeRequest{Method: MethodRocket, Wallet: &WalletDetails{AccountNumber: "01912345678"}}, true, StatusPending, "ROCKET_", ""},
		{"card stays sync", ChargeRequest{Method: MethodCard, Card: validCard()}, true, StatusSuccess, "CARD_", ""},
		{"missing details", ChargeRequest{Method: MethodBkash}, false, StatusFailed, "BKASH_", "payment details missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.PaymentID = uuid.New()
			got, err := testSimulator(1, tt.async).Charge(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Charge: %v", err)
			}
			if got.Status != tt.status {
				t.Errorf("status = %s, want %s", got.Status, tt.status)
			}
			if !strings.HasPrefix(got.TransactionID, tt.prefix) {
				t.Errorf("transaction id = %q, want prefix %q", got.TransactionID, tt.prefix)
			}
			if got.FailureReason != tt.reason {
				t.Errorf("reason = %q, want %q", got.FailureReason, tt.reason)
			}
		})
	}
}

func TestSimulatorSuccessRate(t *testing.T) {
	got, err := testSimulator(0, false).Charge(context.Background(), ChargeRequest{Method: MethodCard, Card: validCard()})
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if got.Status != StatusFailed || got.FailureReason != "payment declined by provider" {
		t.Errorf("got %+v", got)
	}
}

func TestSimulatorHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testSimulator(1, false).Charge(ctx, ChargeRequest{Method: MethodCard, Card: validCard()}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestMasking(t *testing.T) {
	if got := MaskCard("4242424242424242"); got != "**** **** **** 4242" {
		t.Errorf("MaskCard = %q", got)
	}
	if got := MaskWallet("01712345678"); got != "017******78" {
		t.Errorf("MaskWallet = %q", got)
	}
}
