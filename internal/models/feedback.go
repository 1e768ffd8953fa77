package models

import "time"

// Feedback is one submission per order. Remedy is the owner's response,
// either hand-written or AI-generated.
type Feedback struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       string    `gorm:"size:16;uniqueIndex;not null" json:"orderId"`
	PhoneNumber   string    `gorm:"size:15;not null" json:"phoneNumber"`
	ServiceRating int       `gorm:"not null" json:"serviceRating"`
	FoodRating    int       `gorm:"not null" json:"foodRating"`
	PriceRating   int       `gorm:"not null" json:"priceRating"`
	TimeRating    int       `gorm:"not null" json:"timeRating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	Remedy        string    `gorm:"type:text" json:"remedy"`
	Status        string    `gorm:"size:20;not null;default:'New'" json:"status"` // New | Reviewed | Resolved
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Feedback) TableName() string {
	return "feedback"
}
