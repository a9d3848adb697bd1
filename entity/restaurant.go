package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	AddressID uint    `json:"addressId"`
	Address   Address `json:"-"`

	// comma separated, e.g. "indian,chinese"
	CuisineTypes string `json:"cuisineTypes"`

	IsOpen bool    `gorm:"default:true" json:"isOpen"`
	Rating float64 `gorm:"default:0" json:"rating"`

	OwnerID uint `gorm:"index" json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	Menu    []MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"menu,omitempty"`
	Orders  []Order    `json:"-"`
	Reviews []Review   `json:"-"`
}
