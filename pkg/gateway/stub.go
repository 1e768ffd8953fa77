package gateway

import (
	"context"
	"fmt"
	"sync/atomic"
)

// StubClient is a no-network gateway for development when Razorpay
// credentials are not configured. Every fetched payment reports captured.
type StubClient struct {
	seq atomic.Int64
}

func (s *StubClient) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	return &Intent{
		GatewayOrderID: fmt.Sprintf("order_stub_%d", s.seq.Add(1)),
		AmountMinor:    req.AmountMinor,
		Currency:       req.Currency,
	}, nil
}

func (s *StubClient) EditReceipt(ctx context.Context, gatewayOrderID, receipt string) error {
	return nil
}

func (s *StubClient) FetchPayment(ctx context.Context, gatewayPaymentID string) (*PaymentDetails, error) {
	return &PaymentDetails{Status: "captured"}, nil
}
