package repository

import (
	"time"

	"qrmenu/internal/models"

	"gorm.io/gorm"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(c *models.Coupon) error {
	return translate(r.db.Create(c).Error)
}

// GetActiveByCode looks up an active coupon that has not expired at the
// given instant. Codes are stored upper-case; the caller normalizes.
func (r *CouponRepository) GetActiveByCode(code string, now time.Time) (*models.Coupon, error) {
	var c models.Coupon
	err := r.db.
		Where("code = ? AND is_active = ?", code, true).
		Where("valid_until IS NULL OR valid_until >= ?", now).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CouponRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Coupon{}).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}
