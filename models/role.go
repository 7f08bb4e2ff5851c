package models

import (
	"strings"

	"gorm.io/gorm"
)

// CRUD operation letters used by the permission layer.
const (
	OpCreate = "C"
	OpRead   = "R"
	OpUpdate = "U"
	OpDelete = "D"
	OpCRUD   = "CRUD"
)

// Module names permissions are granted against.
const (
	ModuleUsers      = "users"
	ModuleStorefront = "storefront"
	ModuleCategory   = "category"
	ModuleProduct    = "product"
	ModuleCart       = "cart"
	ModulePromotion  = "promotion"
	ModuleDiscount   = "discount"
	ModuleOrder      = "order"
	ModulePlan       = "plan"
	ModuleAddress    = "address"
	ModuleBank       = "bank"
	ModuleSupport    = "support"
)

// Role names a permission set that can be attached to users.
type Role struct {
	gorm.Model
	Name        string       `gorm:"not null;uniqueIndex" json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions" gorm:"foreignKey:RoleID"`
}

// Permission grants a set of CRUD operations on one module.
// Operations is a string of operation letters, e.g. "CRU".
type Permission struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RoleID     uint   `gorm:"not null;index" json:"role_id"`
	Module     string `gorm:"not null" json:"module"`
	Operations string `gorm:"not null" json:"operations"`
}

// Allows reports whether the permission covers op on module.
func (p *Permission) Allows(module, op string) bool {
	return p.Module == module && strings.Contains(p.Operations, op)
}

// HasPermission reports whether any of the role's permissions covers op on
// module.
func (r *Role) HasPermission(module, op string) bool {
	for _, p := range r.Permissions {
		if p.Allows(module, op) {
			return true
		}
	}
	return false
}
