package entity

import (
	"gorm.io/gorm"
)

// OrderItem snapshots the unit price at checkout time.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"menuItem,omitempty"`

	Quantity  int   `gorm:"not null" json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
	Total     int64 `json:"total"`
}
