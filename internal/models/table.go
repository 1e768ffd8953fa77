package models

import "time"

type Table struct {
	Number    int       `gorm:"primaryKey" json:"number"`
	Status    string    `gorm:"size:20;not null;default:'available'" json:"status"` // available | occupied
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Table) TableName() string {
	return "tables"
}
