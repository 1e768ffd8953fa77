package gateway

import "context"

// IntentRequest creates a payment intent with the gateway. Amount is in
// minor currency units (paise for INR).
type IntentRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// Intent is the gateway's record of a pending payment.
type Intent struct {
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
}

// PaymentDetails is the gateway's authoritative view of one payment attempt.
type PaymentDetails struct {
	Status      string // "captured" means money moved
	AmountMinor int64
	Method      string
}

// Client is the payment gateway surface the core depends on.
type Client interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	// EditReceipt relabels the intent's receipt field; failures are non-fatal.
	EditReceipt(ctx context.Context, gatewayOrderID, receipt string) error
	FetchPayment(ctx context.Context, gatewayPaymentID string) (*PaymentDetails, error)
}
