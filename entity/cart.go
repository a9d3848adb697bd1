package entity

import (
	"gorm.io/gorm"
)

// Cart is the user's single live cart, bound to one restaurant while it
// has items. TotalAmount is recomputed from live menu prices on every
// mutation; the cart never snapshots prices.
type Cart struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	TotalAmount int64 `json:"totalAmount"`

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
