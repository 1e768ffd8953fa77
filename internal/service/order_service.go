package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
)

// EventSink receives every order transition with the full updated record.
// Publishing is fire-and-forget; the sink must not block.
type EventSink interface {
	Publish(event string, order *models.Order)
}

// OrderStore is the durable order record surface the lifecycle depends on.
type OrderStore interface {
	Create(*models.Order) error
	GetByOrderID(orderID string) (*models.Order, error)
	Save(*models.Order) error
	List(phoneNumber string) ([]models.Order, error)
	PendingVerification() ([]models.Order, error)
	ChefQueue() ([]models.Order, error)
	UpdateStatusIfPaymentPending(orderID string, pay domain.PaymentStatus, cook domain.CookStatus) (int64, error)
	FindStale(cutoff time.Time) ([]models.Order, error)
}

// OrderService owns the order lifecycle state machine. Every transition --
// creation, manager verification, kitchen updates, payment outcomes, reaper
// sweeps -- funnels through the same apply path, so the coupling rules and
// the change notification cannot be bypassed.
type OrderService struct {
	store  OrderStore
	events EventSink
	now    func() time.Time
}

func NewOrderService(store OrderStore, events EventSink) *OrderService {
	return &OrderService{store: store, events: events, now: time.Now}
}

type CreateOrderInput struct {
	TableNumber string
	Items       models.OrderItems
	TotalAmount float64
	Note        string
	PhoneNumber string
}

func (in CreateOrderInput) validate() error {
	switch {
	case in.TableNumber == "":
		return fmt.Errorf("%w: table number is required", domain.ErrValidation)
	case len(in.Items) == 0:
		return fmt.Errorf("%w: at least one item is required", domain.ErrValidation)
	case in.TotalAmount <= 0:
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	case in.PhoneNumber == "":
		return fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	}
	return nil
}

const createAttempts = 5

// Create places a new order with a freshly generated identifier, retrying
// on the (unlikely) duplicate within the same second.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var lastErr error
	for i := 0; i < createAttempts; i++ {
		o, err := s.CreateWithID(GenerateOrderID(s.now()), in)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("order id generation exhausted after %d attempts: %w", createAttempts, lastErr)
}

// CreateWithID places a new order under a caller-supplied identifier (the
// payment checkout path generates the id before the order exists).
func (s *OrderService) CreateWithID(orderID string, in CreateOrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	o := &models.Order{
		OrderID:       orderID,
		TableNumber:   in.TableNumber,
		Items:         in.Items,
		TotalAmount:   in.TotalAmount,
		Note:          in.Note,
		PhoneNumber:   in.PhoneNumber,
		CookStatus:    domain.CookPending,
		PaymentStatus: domain.PaymentPending,
	}
	if err := s.store.Create(o); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("order id %s already exists: %w", orderID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create order %s: %w", orderID, err)
	}
	s.events.Publish(domain.EventOrderStatusUpdate, o)
	return o, nil
}

func (s *OrderService) Get(orderID string) (*models.Order, error) {
	return s.store.GetByOrderID(orderID)
}

func (s *OrderService) List(phoneNumber string) ([]models.Order, error) {
	return s.store.List(phoneNumber)
}

func (s *OrderService) PendingVerification() ([]models.Order, error) {
	return s.store.PendingVerification()
}

func (s *OrderService) ChefQueue() ([]models.Order, error) {
	return s.store.ChefQueue()
}

// VerifyByManager marks the order as checked by the manager. It does not
// advance the kitchen axis; the order stays Pending for the chef queue.
func (s *OrderService) VerifyByManager(orderID string) (*models.Order, error) {
	o, err := s.store.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if o.VerifiedByManager {
		return nil, fmt.Errorf("order %s already verified: %w", orderID, domain.ErrConflict)
	}
	err = s.apply(o, func(o *models.Order) {
		o.VerifiedByManager = true
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateCookStatus moves the kitchen axis. The requested value must be a
// known status and legal from the current one; payment state is never
// consulted here (kitchen work may proceed before payment).
func (s *OrderService) UpdateCookStatus(orderID string, requested string) (*models.Order, error) {
	next := domain.CookStatus(requested)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown cook status %q", domain.ErrValidation, requested)
	}
	o, err := s.store.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if !o.CookStatus.CanBecome(next) {
		return nil, fmt.Errorf("cook status %s cannot become %s: %w", o.CookStatus, next, domain.ErrConflict)
	}
	err = s.apply(o, func(o *models.Order) {
		o.CookStatus = next
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ApplyPaymentOutcome couples the two axes after payment verification.
// Success marks the order Paid and leaves the kitchen untouched; failure
// marks it Failed and cancels the kitchen regardless of its progress.
// Outcomes against an already-terminal payment status are no-ops so that
// gateway callback replays never regress state or raise.
func (s *OrderService) ApplyPaymentOutcome(orderID string, paid bool) (*models.Order, error) {
	o, err := s.store.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	next := domain.PaymentFailed
	if paid {
		next = domain.PaymentPaid
	}
	if o.PaymentStatus == next || !o.PaymentStatus.CanBecome(next) {
		return o, nil
	}
	err = s.apply(o, func(o *models.Order) {
		o.PaymentStatus = next
		if !paid {
			o.CookStatus = domain.CookCancelled
		}
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// FailPaymentIfPending is the best-effort compensation used by checkout
// rollback and signature-mismatch handling. The narrowed update only lands
// while payment is still Pending, so a concurrent terminal transition wins.
// Failures are logged, never propagated.
func (s *OrderService) FailPaymentIfPending(orderID string) {
	n, err := s.store.UpdateStatusIfPaymentPending(orderID, domain.PaymentFailed, domain.CookCancelled)
	if err != nil {
		log.Printf("[order] compensate %s: %v", orderID, err)
		return
	}
	if n == 0 {
		return
	}
	log.Printf("[order] compensated %s: payment Failed, kitchen Cancelled", orderID)
	if o, err := s.store.GetByOrderID(orderID); err == nil {
		s.events.Publish(domain.EventOrderStatusUpdate, o)
	}
}

// ExpireStale cancels orders still active on the kitchen axis that are
// older than maxAge, recording payment as Refunded (the refund itself is
// handled out of band). Returns the number of orders reaped.
func (s *OrderService) ExpireStale(maxAge time.Duration) (int, error) {
	stale, err := s.store.FindStale(s.now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("find stale orders: %w", err)
	}
	reaped := 0
	for i := range stale {
		o := &stale[i]
		err := s.apply(o, func(o *models.Order) {
			o.CookStatus = domain.CookCancelled
			o.PaymentStatus = domain.PaymentRefunded
		})
		if err != nil {
			log.Printf("[order] expire %s: %v", o.OrderID, err)
			continue
		}
		reaped++
	}
	return reaped, nil
}

// apply is the single mutation path: persist, then notify observers.
func (s *OrderService) apply(o *models.Order, mutate func(*models.Order)) error {
	mutate(o)
	if err := s.store.Save(o); err != nil {
		return fmt.Errorf("save order %s: %w", o.OrderID, err)
	}
	s.events.Publish(domain.EventOrderStatusUpdate, o)
	return nil
}
