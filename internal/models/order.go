package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"qrmenu/internal/domain"
)

// OrderItem is a single line item on an order.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderItems is stored as a JSON text column.
type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	if i == nil {
		i = OrderItems{}
	}
	b, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *OrderItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*i = OrderItems{}
		return nil
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	}
	return fmt.Errorf("unsupported items column type %T", src)
}

// Order is the durable order record. OrderID is the human-readable
// identifier shared with the payment ledger; it never changes once assigned.
// Orders are never deleted: cancellation is a terminal status.
type Order struct {
	ID                uint                 `gorm:"primaryKey" json:"id"`
	OrderID           string               `gorm:"size:16;uniqueIndex;not null" json:"orderId"`
	TableNumber       string               `gorm:"size:10;not null" json:"tableNumber"`
	Items             OrderItems           `gorm:"type:text;not null" json:"items"`
	TotalAmount       float64              `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Note              string               `gorm:"type:text" json:"note"`
	PhoneNumber       string               `gorm:"size:15;not null;index" json:"phoneNumber"`
	VerifiedByManager bool                 `gorm:"not null;default:false" json:"verifiedByManager"`
	CookStatus        domain.CookStatus    `gorm:"size:20;not null;default:'Pending';index" json:"cookStatus"`
	PaymentStatus     domain.PaymentStatus `gorm:"size:20;not null;default:'Pending';index" json:"paymentStatus"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}
