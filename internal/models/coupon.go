package models

import "time"

// Coupon codes are stored upper-case. ValidUntil nil means no expiry.
type Coupon struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Code           string     `gorm:"size:50;uniqueIndex;not null" json:"code"`
	DiscountAmount float64    `gorm:"type:decimal(10,2);not null" json:"discountAmount"`
	DiscountType   string     `gorm:"size:20;not null;default:'fixed'" json:"discountType"` // fixed | percentage
	ValidUntil     *time.Time `json:"validUntil"`
	IsActive       bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Coupon) TableName() string {
	return "coupons"
}
