package entity

import (
	"gorm.io/gorm"
)

// Order is a financial record: TotalAmount is computed once at checkout
// from live menu prices and never recalculated afterwards. Orders are
// never deleted; cancellation is a terminal status.
type Order struct {
	gorm.Model
	Reference string `gorm:"uniqueIndex" json:"reference"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	AddressID uint    `json:"addressId"`
	Address   Address `json:"-"`

	PaymentID uint     `json:"paymentId"`
	Payment   *Payment `gorm:"foreignKey:PaymentID" json:"-"`

	TotalAmount int64       `json:"totalAmount"`
	Status      OrderStatus `gorm:"type:varchar(16);default:placed;index" json:"status"`

	CancellationReason string `json:"cancellationReason,omitempty"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
