package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
)

type CouponStore interface {
	GetActiveByCode(code string, now time.Time) (*models.Coupon, error)
}

// CouponService validates discount codes against the order amount.
type CouponService struct {
	store CouponStore
	now   func() time.Time
}

func NewCouponService(store CouponStore) *CouponService {
	return &CouponService{store: store, now: time.Now}
}

// TODAY20 is a standing promotion that only applies on Thursdays.
const thursdayOnlyCode = "TODAY20"

type CouponResult struct {
	Code           string  `json:"code"`
	OriginalAmount float64 `json:"originalAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}

// Apply resolves the code and computes the discounted amount. Unknown,
// inactive, and expired codes all surface as the same validation error so
// the client cannot probe which codes exist.
func (s *CouponService) Apply(code string, amount float64) (*CouponResult, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: coupon code is required", domain.ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	}
	now := s.now()
	code = strings.ToUpper(strings.TrimSpace(code))

	c, err := s.store.GetActiveByCode(code, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid or expired coupon code", domain.ErrValidation)
		}
		return nil, fmt.Errorf("load coupon: %w", err)
	}
	if c.Code == thursdayOnlyCode && now.Weekday() != time.Thursday {
		return nil, fmt.Errorf("%w: %s is only valid on Thursdays", domain.ErrValidation, thursdayOnlyCode)
	}

	var discount float64
	switch c.DiscountType {
	case domain.DiscountPercentage:
		discount = amount * c.DiscountAmount / 100
	default:
		discount = c.DiscountAmount
	}
	if discount > amount {
		discount = amount
	}
	return &CouponResult{
		Code:           c.Code,
		OriginalAmount: round2(amount),
		DiscountAmount: round2(discount),
		FinalAmount:    round2(amount - discount),
	}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
