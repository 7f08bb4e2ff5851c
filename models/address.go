package models

import (
	"gorm.io/gorm"
)

// Address is a user's shipping address.
type Address struct {
	gorm.Model
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	StreetAddress string `gorm:"not null" json:"street_address"`
	Apartment     string `json:"apartment"`
	City          string `gorm:"not null" json:"city"`
	State         string `gorm:"not null" json:"state"`
	PostalCode    string `gorm:"not null" json:"postal_code"`
	Country       string `gorm:"not null" json:"country"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
	IsDefault     bool   `json:"is_default" gorm:"default:false"`
}
