package models

import (
	"time"

	"gorm.io/gorm"
)

// User types mirror the roles the permission layer understands.
const (
	UserTypeCustomer   = "customer"
	UserTypeAdmin      = "admin"
	UserTypeSuperAdmin = "superadmin"
)

// User represents an account in the system. Admins own storefronts,
// customers shop in them.
type User struct {
	gorm.Model
	Name                string    `gorm:"not null" json:"name"`
	Email               string    `gorm:"uniqueIndex;not null" json:"email"`
	Password            string    `json:"-"`
	Phone               string    `json:"phone"`
	Avatar              string    `json:"avatar"`
	Type                string    `gorm:"default:'customer'" json:"type"`
	RoleID              *uint     `json:"role_id"`
	Role                *Role     `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	StorefrontID        *uint     `json:"storefront_id"`
	IsBlocked           bool      `json:"is_blocked" gorm:"default:false"`
	EmailVerified       bool      `json:"email_verified" gorm:"default:false"`
	VerificationToken   string    `json:"-"`
	VerificationExpires time.Time `json:"-"`
	GoogleID            string    `gorm:"default:null" json:"-"`
	LastLoginAt         time.Time `json:"last_login_at"`

	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user may manage storefront resources.
func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin || u.Type == UserTypeSuperAdmin
}

// Storefront is the tenant scope. Every promotion, product and order
// belongs to exactly one storefront.
type Storefront struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	UserID      uint   `gorm:"not null" json:"user_id"`
	User        User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Category groups products inside a storefront.
type Category struct {
	gorm.Model
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	StorefrontID uint      `json:"storefront_id"`
	Products     []Product `json:"products,omitempty"`
}
