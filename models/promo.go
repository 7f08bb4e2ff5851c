package models

import (
	"time"

	"gorm.io/gorm"
)

// Promo discount types.
const (
	PromoTypePercentage = "percentage"
	PromoTypeFixed      = "fixed"
)

// PromoCode is a storefront-scoped promotion. Codes are stored upper-cased
// and are unique per storefront. A zero UsageLimit means unlimited.
type PromoCode struct {
	gorm.Model
	Code              string     `gorm:"not null;uniqueIndex:idx_promo_code_storefront" json:"code"`
	Description       string     `json:"description"`
	Type              string     `gorm:"not null;default:'percentage'" json:"type"`
	Value             float64    `gorm:"not null;check:value >= 0" json:"value"`
	MinPurchaseAmount float64    `gorm:"default:0;check:min_purchase_amount >= 0" json:"min_purchase_amount"`
	MaxDiscountAmount float64    `gorm:"default:0" json:"max_discount_amount"`
	ValidFrom         time.Time  `gorm:"not null" json:"valid_from"`
	ValidTo           time.Time  `gorm:"not null" json:"valid_to"`
	UsageLimit        int        `gorm:"default:0" json:"usage_limit"`
	UsageCount        int        `gorm:"default:0" json:"usage_count"`
	StorefrontID      uint       `gorm:"not null;uniqueIndex:idx_promo_code_storefront" json:"storefront_id"`
	Storefront        Storefront `json:"storefront,omitempty" gorm:"foreignKey:StorefrontID"`
}

// ValidAt reports whether now falls inside the promo's validity window,
// bounds inclusive.
func (p *PromoCode) ValidAt(now time.Time) bool {
	return !now.Before(p.ValidFrom) && !now.After(p.ValidTo)
}

// Exhausted reports whether the usage limit has been reached. A zero limit
// never exhausts.
func (p *PromoCode) Exhausted() bool {
	return p.UsageLimit > 0 && p.UsageCount >= p.UsageLimit
}

// Discount is one product-level percentage discount with a validity window,
// managed separately from promo codes.
type Discount struct {
	gorm.Model
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	Percentage   float64   `gorm:"not null;check:percentage >= 0 AND percentage <= 100" json:"percentage"`
	ValidFrom    time.Time `gorm:"not null" json:"valid_from"`
	ValidTo      time.Time `gorm:"not null" json:"valid_to"`
	StorefrontID uint      `gorm:"not null" json:"storefront_id"`
	Products     []Product `json:"products,omitempty" gorm:"many2many:discount_products;"`
}
