package models

import "time"

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:255" json:"name"`
	Email              *string   `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash       string    `gorm:"size:255" json:"-"`
	PhoneNumber        *string   `gorm:"size:15;uniqueIndex" json:"phoneNumber"` // nil for Google-created accounts until the profile is completed
	AlternativeContact string    `gorm:"size:15" json:"alternativeContact"`
	Address            string    `gorm:"type:text" json:"address"`
	IPAddress          string    `gorm:"size:45" json:"-"`
	GoogleID           *string   `gorm:"uniqueIndex;size:255" json:"-"` // nil unless linked via Google sign-in
	Role               string    `gorm:"size:20;not null;default:'customer'" json:"role"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// Phone returns the phone number, or "" when none is on file.
func (u *User) Phone() string {
	if u.PhoneNumber == nil {
		return ""
	}
	return *u.PhoneNumber
}
