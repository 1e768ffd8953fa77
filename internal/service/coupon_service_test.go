package service

import (
	"errors"
	"testing"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
)

func newCouponService(now time.Time) *CouponService {
	past := now.Add(-time.Hour)
	store := &mockCouponStore{coupons: map[string]models.Coupon{
		"WELCOME50": {Code: "WELCOME50", DiscountAmount: 50, DiscountType: domain.DiscountFixed, IsActive: true},
		"SAVE10":    {Code: "SAVE10", DiscountAmount: 10, DiscountType: domain.DiscountPercentage, IsActive: true},
		"TODAY20":   {Code: "TODAY20", DiscountAmount: 20, DiscountType: domain.DiscountPercentage, IsActive: true},
		"EXPIRED":   {Code: "EXPIRED", DiscountAmount: 10, DiscountType: domain.DiscountFixed, IsActive: true, ValidUntil: &past},
		"DISABLED":  {Code: "DISABLED", DiscountAmount: 10, DiscountType: domain.DiscountFixed, IsActive: false},
	}}
	svc := NewCouponService(store)
	svc.now = func() time.Time { return now }
	return svc
}

// A Wednesday and a Thursday, for the TODAY20 rule.
var (
	wednesday = time.Date(2026, 9, 2, 13, 0, 0, 0, time.UTC)
	thursday  = time.Date(2026, 9, 3, 13, 0, 0, 0, time.UTC)
)

func TestCouponApply(t *testing.T) {
	t.Run("fixed discount", func(t *testing.T) {
		svc := newCouponService(wednesday)
		r, err := svc.Apply("WELCOME50", 300)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if r.DiscountAmount != 50 || r.FinalAmount != 250 {
			t.Errorf("discount/final = %v/%v, want 50/250", r.DiscountAmount, r.FinalAmount)
		}
	})

	t.Run("percentage discount", func(t *testing.T) {
		svc := newCouponService(wednesday)
		r, err := svc.Apply("SAVE10", 480.50)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if r.DiscountAmount != 48.05 || r.FinalAmount != 432.45 {
			t.Errorf("discount/final = %v/%v, want 48.05/432.45", r.DiscountAmount, r.FinalAmount)
		}
	})

	t.Run("fixed discount never drops below zero", func(t *testing.T) {
		svc := newCouponService(wednesday)
		r, err := svc.Apply("WELCOME50", 30)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if r.FinalAmount != 0 {
			t.Errorf("final = %v, want 0", r.FinalAmount)
		}
	})

	t.Run("code is case insensitive", func(t *testing.T) {
		svc := newCouponService(wednesday)
		r, err := svc.Apply("welcome50", 300)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if r.Code != "WELCOME50" {
			t.Errorf("code = %q, want WELCOME50", r.Code)
		}
	})

	t.Run("thursday-only code works on thursday", func(t *testing.T) {
		svc := newCouponService(thursday)
		r, err := svc.Apply("TODAY20", 500)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if r.FinalAmount != 400 {
			t.Errorf("final = %v, want 400", r.FinalAmount)
		}
	})

	t.Run("thursday-only code rejected on other days", func(t *testing.T) {
		svc := newCouponService(wednesday)
		if _, err := svc.Apply("TODAY20", 500); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown, expired and disabled codes look identical", func(t *testing.T) {
		svc := newCouponService(wednesday)
		for _, code := range []string{"NOPE", "EXPIRED", "DISABLED"} {
			if _, err := svc.Apply(code, 100); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("%s: err = %v, want ErrValidation", code, err)
			}
		}
	})

	t.Run("rejects empty code and non-positive amount", func(t *testing.T) {
		svc := newCouponService(wednesday)
		if _, err := svc.Apply("", 100); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("empty code err = %v, want ErrValidation", err)
		}
		if _, err := svc.Apply("SAVE10", 0); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("zero amount err = %v, want ErrValidation", err)
		}
	})
}
