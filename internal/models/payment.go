package models

import (
	"time"

	"qrmenu/internal/domain"
)

// Payment is one ledger row per payment attempt, correlated to an Order via
// the shared OrderID. GatewayOrderID is set exactly once at intent creation;
// GatewayPaymentID only once the gateway reports a concrete attempt. Status
// moves monotonically toward a terminal state and never regresses.
type Payment struct {
	ID               uint                 `gorm:"primaryKey" json:"id"`
	OrderID          string               `gorm:"size:16;uniqueIndex;not null" json:"orderId"`
	PhoneNumber      string               `gorm:"size:15;not null" json:"phoneNumber"`
	Amount           float64              `gorm:"type:decimal(10,2);not null" json:"amount"`
	GatewayOrderID   string               `gorm:"size:255;index" json:"gatewayOrderId"`
	GatewayPaymentID string               `gorm:"size:255" json:"gatewayPaymentId"`
	TableNumber      string               `gorm:"size:10;not null" json:"tableNumber"`
	Status           domain.PaymentStatus `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

func (Payment) TableName() string {
	return "payments"
}
