package entity

import (
	"gorm.io/gorm"
)

const (
	RoleUser            = "user"
	RoleAdmin           = "admin"
	RoleRestaurantOwner = "restaurantOwner"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"not null;default:user" json:"role"`

	// Relations, preloaded only where needed.
	Addresses        []Address    `json:"-"`
	RestaurantsOwned []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
	Orders           []Order      `json:"-"`
	Payments         []Payment    `json:"-"`
	Reviews          []Review     `json:"-"`
}
