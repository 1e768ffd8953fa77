package repository

import (
	"errors"
	"time"

	"qrmenu/internal/models"

	"gorm.io/gorm"
)

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Upsert replaces any outstanding code for the phone number.
func (r *OTPRepository) Upsert(phoneNumber, code string, expiresAt time.Time) error {
	var otp models.OTP
	err := r.db.Where("phone_number = ?", phoneNumber).First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return translate(r.db.Create(&models.OTP{
			PhoneNumber: phoneNumber,
			Code:        code,
			ExpiresAt:   expiresAt,
		}).Error)
	}
	if err != nil {
		return translate(err)
	}
	otp.Code = code
	otp.ExpiresAt = expiresAt
	return translate(r.db.Save(&otp).Error)
}

func (r *OTPRepository) GetByPhone(phoneNumber string) (*models.OTP, error) {
	var otp models.OTP
	if err := r.db.Where("phone_number = ?", phoneNumber).First(&otp).Error; err != nil {
		return nil, translate(err)
	}
	return &otp, nil
}

// Delete removes the code after successful verification (single use).
func (r *OTPRepository) Delete(phoneNumber string) error {
	return translate(r.db.Where("phone_number = ?", phoneNumber).Delete(&models.OTP{}).Error)
}
