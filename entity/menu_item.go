package entity

import (
	"gorm.io/gorm"
)

// MenuItem belongs to exactly one restaurant. Its id is the stable handle
// carts and orders reference; edits keep the id, only deletion retires it.
type MenuItem struct {
	gorm.Model
	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"` // minor units
	Category    string `json:"category"`

	IsVegetarian bool `json:"isVegetarian"`
	IsVegan      bool `json:"isVegan"`
	IsGlutenFree bool `json:"isGlutenFree"`
	SpicyLevel   int  `gorm:"default:0" json:"spicyLevel"` // 0..3

	Image string `json:"image"`
}
