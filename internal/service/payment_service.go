package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
	"qrmenu/pkg/gateway"
)

// PaymentStore is the payment record surface the checkout and verification
// flows depend on.
type PaymentStore interface {
	Create(*models.Payment) error
	GetByOrderID(orderID string) (*models.Payment, error)
	GetByGatewayOrderID(gatewayOrderID string) (*models.Payment, error)
	UpdateResultIfPending(gatewayOrderID string, status domain.PaymentStatus, gatewayPaymentID string) (int64, error)
	FailIfPending(orderID string) (int64, error)
}

// PaymentService drives online checkout: intent creation at the gateway,
// local payment and order record creation, and the signed callback that
// reconciles the gateway outcome into the order lifecycle.
type PaymentService struct {
	payments PaymentStore
	orders   *OrderService
	gateway  gateway.Client
	secret   string
	currency string
	now      func() time.Time
}

func NewPaymentService(payments PaymentStore, orders *OrderService, gw gateway.Client, keySecret, currency string) *PaymentService {
	return &PaymentService{
		payments: payments,
		orders:   orders,
		gateway:  gw,
		secret:   keySecret,
		currency: currency,
		now:      time.Now,
	}
}

type CheckoutInput struct {
	PhoneNumber string
	TableNumber string
	Note        string
	Items       models.OrderItems
	Amount      float64
}

// Checkout is what the client needs to open the gateway's payment UI.
type Checkout struct {
	OrderID        string            `json:"orderId"`
	GatewayOrderID string            `json:"gatewayOrderId"`
	Amount         float64           `json:"amount"`
	AmountMinor    int64             `json:"amountMinor"`
	Currency       string            `json:"currency"`
	TableNumber    string            `json:"tableNumber"`
	Items          models.OrderItems `json:"items"`
}

// CreateCheckout creates a payment intent at the gateway, then the local
// payment and order records under a fresh order id. The intent is created
// first under a temporary receipt and relabelled once the id exists; a
// relabel failure is logged and tolerated since the local id is
// authoritative. If local record creation fails after the intent exists,
// both records are compensated to Failed/Cancelled.
func (s *PaymentService) CreateCheckout(ctx context.Context, in CheckoutInput) (*Checkout, error) {
	orderIn := CreateOrderInput{
		TableNumber: in.TableNumber,
		Items:       in.Items,
		TotalAmount: in.Amount,
		Note:        in.Note,
		PhoneNumber: in.PhoneNumber,
	}
	if err := orderIn.validate(); err != nil {
		return nil, err
	}

	amountMinor := int64(math.Round(in.Amount * 100))
	intent, err := s.gateway.CreateIntent(ctx, gateway.IntentRequest{
		AmountMinor: amountMinor,
		Currency:    s.currency,
		Receipt:     fmt.Sprintf("rcpt_%d", s.now().UnixNano()),
		Notes: map[string]string{
			"phoneNumber": in.PhoneNumber,
			"tableNumber": in.TableNumber,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create payment intent: %v", domain.ErrUpstream, err)
	}

	orderID := GenerateOrderID(s.now())
	if err := s.gateway.EditReceipt(ctx, intent.GatewayOrderID, orderID); err != nil {
		log.Printf("[payment] relabel receipt for %s: %v", orderID, err)
	}

	p := &models.Payment{
		OrderID:        orderID,
		PhoneNumber:    in.PhoneNumber,
		Amount:         in.Amount,
		GatewayOrderID: intent.GatewayOrderID,
		TableNumber:    in.TableNumber,
		Status:         domain.PaymentPending,
	}
	if err := s.payments.Create(p); err != nil {
		return nil, fmt.Errorf("%w: create payment record: %v", domain.ErrInternal, err)
	}

	if _, err := s.orders.CreateWithID(orderID, orderIn); err != nil {
		s.compensate(orderID)
		return nil, fmt.Errorf("%w: create order record: %v", domain.ErrInternal, err)
	}

	return &Checkout{
		OrderID:        orderID,
		GatewayOrderID: intent.GatewayOrderID,
		Amount:         in.Amount,
		AmountMinor:    intent.AmountMinor,
		Currency:       intent.Currency,
		TableNumber:    in.TableNumber,
		Items:          in.Items,
	}, nil
}

type VerifyInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	OrderID          string
}

type VerifyResult struct {
	OrderID string               `json:"orderId"`
	Status  domain.PaymentStatus `json:"status"`
}

// VerifyPayment reconciles the gateway callback. The signature is checked
// first; a mismatch downgrades the records without ever querying the
// gateway. A valid signature triggers a gateway fetch of the authoritative
// payment state, a narrowed update of the payment record, and the coupled
// order transition. Replays against settled records report the recorded
// outcome without changing anything.
func (s *PaymentService) VerifyPayment(ctx context.Context, in VerifyInput) (*VerifyResult, error) {
	if in.GatewayOrderID == "" || in.GatewayPaymentID == "" || in.Signature == "" || in.OrderID == "" {
		return nil, fmt.Errorf("%w: missing payment verification fields", domain.ErrValidation)
	}

	if !s.signatureValid(in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		s.downgrade(in)
		return nil, fmt.Errorf("%w: payment signature mismatch", domain.ErrAuthentication)
	}

	details, err := s.gateway.FetchPayment(ctx, in.GatewayPaymentID)
	if err != nil {
		s.downgrade(in)
		return nil, fmt.Errorf("%w: fetch payment state: %v", domain.ErrUpstream, err)
	}
	status := domain.PaymentFailed
	if details.Status == "captured" {
		status = domain.PaymentPaid
	}

	n, err := s.payments.UpdateResultIfPending(in.GatewayOrderID, status, in.GatewayPaymentID)
	if err != nil {
		s.downgrade(in)
		return nil, fmt.Errorf("%w: record payment outcome: %v", domain.ErrInternal, err)
	}
	if n == 0 {
		// Already settled; report what was recorded.
		p, err := s.payments.GetByGatewayOrderID(in.GatewayOrderID)
		if err != nil {
			return nil, fmt.Errorf("payment for gateway order %s: %w", in.GatewayOrderID, err)
		}
		return &VerifyResult{OrderID: p.OrderID, Status: p.Status}, nil
	}

	if _, err := s.orders.ApplyPaymentOutcome(in.OrderID, status == domain.PaymentPaid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Payment settled but the order row is missing. Keep the
			// payment outcome and surface the gap in the logs.
			log.Printf("[payment] verified %s but order record is missing", in.OrderID)
			return &VerifyResult{OrderID: in.OrderID, Status: status}, nil
		}
		s.downgrade(in)
		return nil, fmt.Errorf("%w: apply payment outcome: %v", domain.ErrInternal, err)
	}

	return &VerifyResult{OrderID: in.OrderID, Status: status}, nil
}

func (s *PaymentService) signatureValid(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// downgrade marks both records Failed/Cancelled, but only while they are
// still Pending. Best effort; a concurrent settled outcome is left alone.
func (s *PaymentService) downgrade(in VerifyInput) {
	if _, err := s.payments.UpdateResultIfPending(in.GatewayOrderID, domain.PaymentFailed, in.GatewayPaymentID); err != nil {
		log.Printf("[payment] downgrade payment %s: %v", in.GatewayOrderID, err)
	}
	s.orders.FailPaymentIfPending(in.OrderID)
}

// compensate undoes a half-finished checkout.
func (s *PaymentService) compensate(orderID string) {
	if _, err := s.payments.FailIfPending(orderID); err != nil {
		log.Printf("[payment] compensate %s: %v", orderID, err)
	}
	s.orders.FailPaymentIfPending(orderID)
}
