package payments

import "time"

// CostRequest prices a slot without booking it
type CostRequest struct {
	VenueID     string    `json:"venueId" validate:"required,uuid"`
	MealID      string    `json:"mealId" validate:"omitempty,uuid"`
	PeopleCount int       `json:"peopleCount" validate:"required,min=1"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
}

type CardDetails struct {
	Number      string `json:"number" validate:"required,numeric,min=12,max=19"`
	ExpiryMonth int    `json:"expiryMonth" validate:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiryYear" validate:"required,min=2000,max=2100"`
	CVV         string `json:"cvv" validate:"required,numeric,min=3,max=4"`
	HolderName  string `json:"holderName" validate:"required,notblank,max=100"`
}

type WalletDetails struct {
	AccountNumber string `json:"accountNumber" validate:"required,bdmobile"`
}

// ProcessPaymentRequest pays for and books a venue slot in one call
type ProcessPaymentRequest struct {
	VenueID     string    `json:"venueId" validate:"required,uuid"`
	MealID      string    `json:"mealId" validate:"omitempty,uuid"`
	PeopleCount int       `json:"peopleCount" validate:"required,min=1"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Title       string    `json:"title" validate:"omitempty,max=200"`
	Notes       string    `json:"notes" validate:"omitempty,max=2000"`

	PaymentMethod Method         `json:"paymentMethod" validate:"required,oneof=card bkash nagad rocket"`
	Card          *CardDetails   `json:"card"`
	Wallet        *WalletDetails `json:"wallet"`
}

func (r *ProcessPaymentRequest) cost() *CostRequest {
	return &CostRequest{
		VenueID:     r.VenueID,
		MealID:      r.MealID,
		PeopleCount: r.PeopleCount,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

type RefundRequest struct {
	Reason string `json:"reason" validate:"required,trimmedmin=10,max=500"`
}

// WebhookPayload is the asynchronous status update a provider posts back
type WebhookPayload struct {
	TransactionID string    `json:"transactionId" validate:"required,max=64"`
	Status        Status    `json:"status" validate:"required,oneof=pending success failed refunded"`
	Amount        float64   `json:"amount" validate:"gte=0"`
	Method        Method    `json:"method" validate:"required,oneof=card bkash nagad rocket"`
	Timestamp     time.Time `json:"timestamp" validate:"required"`
	Signature     string    `json:"signature" validate:"required,hexadecimal"`
}
