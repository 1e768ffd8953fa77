package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
	"qrmenu/internal/repository"
	"qrmenu/pkg/gateway"
)

// In-memory stores standing in for the gorm repositories. They enforce the
// same uniqueness and narrowed-update semantics.

type mockOrderStore struct {
	mu        sync.Mutex
	orders    map[string]models.Order
	createErr error
	saveErr   error
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{orders: make(map[string]models.Order)}
}

func (m *mockOrderStore) Create(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.orders[o.OrderID]; exists {
		return fmt.Errorf("duplicate order id: %w", domain.ErrConflict)
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	m.orders[o.OrderID] = *o
	return nil
}

func (m *mockOrderStore) GetByOrderID(orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	cp := o
	return &cp, nil
}

func (m *mockOrderStore) Save(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.orders[o.OrderID] = *o
	return nil
}

func (m *mockOrderStore) List(phoneNumber string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if phoneNumber == "" || o.PhoneNumber == phoneNumber {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderStore) PendingVerification() ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if !o.VerifiedByManager && !o.CookStatus.Terminal() {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderStore) ChefQueue() ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if o.VerifiedByManager && !o.CookStatus.Terminal() {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderStore) UpdateStatusIfPaymentPending(orderID string, pay domain.PaymentStatus, cook domain.CookStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.PaymentStatus != domain.PaymentPending {
		return 0, nil
	}
	o.PaymentStatus = pay
	o.CookStatus = cook
	m.orders[orderID] = o
	return 1, nil
}

func (m *mockOrderStore) FindStale(cutoff time.Time) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if !o.CookStatus.Terminal() && o.CreatedAt.Before(cutoff) {
			out = append(out, o)
		}
	}
	return out, nil
}

// publishedEvent is a snapshot of one sink notification.
type publishedEvent struct {
	Event   string
	OrderID string
	Cook    domain.CookStatus
	Pay     domain.PaymentStatus
}

type mockEventSink struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (m *mockEventSink) Publish(event string, order *models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, publishedEvent{
		Event:   event,
		OrderID: order.OrderID,
		Cook:    order.CookStatus,
		Pay:     order.PaymentStatus,
	})
}

func (m *mockEventSink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func (m *mockEventSink) last() publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[len(m.events)-1]
}

func (m *mockEventSink) forOrder(orderID string) []publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []publishedEvent
	for _, e := range m.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out
}

type mockPaymentStore struct {
	mu        sync.Mutex
	payments  map[string]models.Payment // keyed by OrderID
	createErr error
	updateErr error
}

func newMockPaymentStore() *mockPaymentStore {
	return &mockPaymentStore{payments: make(map[string]models.Payment)}
}

func (m *mockPaymentStore) Create(p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.payments[p.OrderID]; exists {
		return fmt.Errorf("duplicate payment: %w", domain.ErrConflict)
	}
	m.payments[p.OrderID] = *p
	return nil
}

func (m *mockPaymentStore) GetByOrderID(orderID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[orderID]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", orderID, domain.ErrNotFound)
	}
	cp := p
	return &cp, nil
}

func (m *mockPaymentStore) GetByGatewayOrderID(gatewayOrderID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.GatewayOrderID == gatewayOrderID {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("gateway order %s: %w", gatewayOrderID, domain.ErrNotFound)
}

func (m *mockPaymentStore) UpdateResultIfPending(gatewayOrderID string, status domain.PaymentStatus, gatewayPaymentID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	for id, p := range m.payments {
		if p.GatewayOrderID == gatewayOrderID && p.Status == domain.PaymentPending {
			p.Status = status
			if gatewayPaymentID != "" {
				p.GatewayPaymentID = gatewayPaymentID
			}
			m.payments[id] = p
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockPaymentStore) FailIfPending(orderID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[orderID]
	if !ok || p.Status != domain.PaymentPending {
		return 0, nil
	}
	p.Status = domain.PaymentFailed
	m.payments[orderID] = p
	return 1, nil
}

// mockGateway counts calls so tests can assert the gateway is never queried
// on a signature mismatch.
type mockGateway struct {
	mu            sync.Mutex
	createCalls   int
	fetchCalls    int
	intentErr     error
	fetchErr      error
	paymentStatus string
	receipts      map[string]string
	seq           int
}

func newMockGateway() *mockGateway {
	return &mockGateway{paymentStatus: "captured", receipts: make(map[string]string)}
}

func (m *mockGateway) CreateIntent(ctx context.Context, req gateway.IntentRequest) (*gateway.Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.intentErr != nil {
		return nil, m.intentErr
	}
	m.seq++
	id := fmt.Sprintf("order_gw_%d", m.seq)
	m.receipts[id] = req.Receipt
	return &gateway.Intent{GatewayOrderID: id, AmountMinor: req.AmountMinor, Currency: req.Currency}, nil
}

func (m *mockGateway) EditReceipt(ctx context.Context, gatewayOrderID, receipt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[gatewayOrderID] = receipt
	return nil
}

func (m *mockGateway) FetchPayment(ctx context.Context, gatewayPaymentID string) (*gateway.PaymentDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return &gateway.PaymentDetails{Status: m.paymentStatus}, nil
}

type mockUserStore struct {
	mu    sync.Mutex
	users []models.User
	seq   uint
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{}
}

// phoneTaken mirrors the unique index on users.phone_number: NULL rows
// never collide, non-NULL values must be unique.
func (m *mockUserStore) phoneTaken(phone *string, exceptID uint) bool {
	if phone == nil {
		return false
	}
	for _, u := range m.users {
		if u.ID != exceptID && u.PhoneNumber != nil && *u.PhoneNumber == *phone {
			return true
		}
	}
	return false
}

func (m *mockUserStore) Create(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phoneTaken(u.PhoneNumber, 0) {
		return fmt.Errorf("duplicate phone: %w", domain.ErrConflict)
	}
	m.seq++
	u.ID = m.seq
	m.users = append(m.users, *u)
	return nil
}

func (m *mockUserStore) GetByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}

func (m *mockUserStore) GetByPhone(phoneNumber string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.PhoneNumber != nil && *u.PhoneNumber == phoneNumber {
			cp := u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", phoneNumber, domain.ErrNotFound)
}

func (m *mockUserStore) Save(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phoneTaken(u.PhoneNumber, u.ID) {
		return fmt.Errorf("duplicate phone: %w", domain.ErrConflict)
	}
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = *u
			return nil
		}
	}
	m.users = append(m.users, *u)
	return nil
}

type mockOTPStore struct {
	mu   sync.Mutex
	otps map[string]models.OTP
}

func newMockOTPStore() *mockOTPStore {
	return &mockOTPStore{otps: make(map[string]models.OTP)}
}

func (m *mockOTPStore) Upsert(phoneNumber, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps[phoneNumber] = models.OTP{PhoneNumber: phoneNumber, Code: code, ExpiresAt: expiresAt}
	return nil
}

func (m *mockOTPStore) GetByPhone(phoneNumber string) (*models.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	otp, ok := m.otps[phoneNumber]
	if !ok {
		return nil, fmt.Errorf("otp %s: %w", phoneNumber, domain.ErrNotFound)
	}
	cp := otp
	return &cp, nil
}

func (m *mockOTPStore) Delete(phoneNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.otps, phoneNumber)
	return nil
}

// mockSMSSender records outgoing messages.
type mockSMSSender struct {
	mu       sync.Mutex
	messages []string
	to       []string
	err      error
}

func (m *mockSMSSender) Send(ctx context.Context, to, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, to)
	m.messages = append(m.messages, text)
	return nil
}

type mockCouponStore struct {
	coupons map[string]models.Coupon
}

func (m *mockCouponStore) GetActiveByCode(code string, now time.Time) (*models.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok || !c.IsActive {
		return nil, fmt.Errorf("coupon %s: %w", code, domain.ErrNotFound)
	}
	if c.ValidUntil != nil && c.ValidUntil.Before(now) {
		return nil, fmt.Errorf("coupon %s: %w", code, domain.ErrNotFound)
	}
	cp := c
	return &cp, nil
}

type mockFeedbackStore struct {
	mu       sync.Mutex
	feedback map[uint]models.Feedback
	seq      uint
}

func newMockFeedbackStore() *mockFeedbackStore {
	return &mockFeedbackStore{feedback: make(map[uint]models.Feedback)}
}

func (m *mockFeedbackStore) Create(f *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.feedback {
		if existing.OrderID == f.OrderID {
			return fmt.Errorf("duplicate feedback: %w", domain.ErrConflict)
		}
	}
	m.seq++
	f.ID = m.seq
	m.feedback[f.ID] = *f
	return nil
}

func (m *mockFeedbackStore) GetByID(id uint) (*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.feedback[id]
	if !ok {
		return nil, fmt.Errorf("feedback %d: %w", id, domain.ErrNotFound)
	}
	cp := f
	return &cp, nil
}

func (m *mockFeedbackStore) GetByOrderID(orderID string) (*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.feedback {
		if f.OrderID == orderID {
			cp := f
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("feedback for %s: %w", orderID, domain.ErrNotFound)
}

func (m *mockFeedbackStore) List(orderID string) ([]models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Feedback
	for _, f := range m.feedback {
		if orderID == "" || f.OrderID == orderID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockFeedbackStore) Save(f *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback[f.ID] = *f
	return nil
}

type mockCompletionClient struct {
	response string
	err      error
	prompts  []string
}

func (m *mockCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockReportPaymentStore struct {
	sales     float64
	count     int64
	breakdown []repository.DailySales
	payments  []models.Payment
	ranked    []models.Payment
	err       error

	salesWindows [][2]time.Time
	listPaidOnly []bool
}

func (m *mockReportPaymentStore) SalesBetween(start, end time.Time) (float64, int64, error) {
	m.salesWindows = append(m.salesWindows, [2]time.Time{start, end})
	if m.err != nil {
		return 0, 0, m.err
	}
	return m.sales, m.count, nil
}

func (m *mockReportPaymentStore) DailyBreakdown(start, end time.Time) ([]repository.DailySales, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.breakdown, nil
}

func (m *mockReportPaymentStore) ListBetween(start, end time.Time, paidOnly bool) ([]models.Payment, error) {
	m.listPaidOnly = append(m.listPaidOnly, paidOnly)
	if m.err != nil {
		return nil, m.err
	}
	return m.payments, nil
}

func (m *mockReportPaymentStore) ListBetweenRanked(start, end time.Time) ([]models.Payment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ranked, nil
}

type mockReportOrderStore struct {
	orders []models.Order
	err    error
}

func (m *mockReportOrderStore) PaidBetween(start, end time.Time) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}
