package models

import "time"

// OTP holds the single outstanding one-time code per phone number.
// Re-requesting replaces the previous code.
type OTP struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PhoneNumber string    `gorm:"size:15;uniqueIndex;not null" json:"phoneNumber"`
	Code        string    `gorm:"size:10;not null" json:"-"`
	ExpiresAt   time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (OTP) TableName() string {
	return "otps"
}
