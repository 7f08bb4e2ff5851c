package models

import (
	"gorm.io/gorm"
)

// Support request types.
const (
	SupportTypeGeneral   = "GENERAL"
	SupportTypeTechnical = "TECHNICAL"
	SupportTypeBilling   = "BILLING"
	SupportTypeProduct   = "PRODUCT"
	SupportTypeOther     = "OTHER"
)

// Support is a customer support ticket.
type Support struct {
	gorm.Model
	Name        string   `gorm:"not null" json:"name"`
	Email       string   `gorm:"not null" json:"email"`
	Subject     string   `gorm:"not null" json:"subject"`
	RequestType string   `gorm:"not null" json:"request_type"`
	Description string   `gorm:"not null" json:"description"`
	Attachments []string `gorm:"serializer:json" json:"attachments"`
	Resolved    bool     `json:"resolved" gorm:"default:false"`
}

// ValidSupportType reports whether t is a known request type.
func ValidSupportType(t string) bool {
	switch t {
	case SupportTypeGeneral, SupportTypeTechnical, SupportTypeBilling,
		SupportTypeProduct, SupportTypeOther:
		return true
	}
	return false
}
