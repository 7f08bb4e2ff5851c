package models

import (
	"gorm.io/gorm"
)

// Billing cycles and supported currencies for subscription plans.
const (
	BillingCycleMonthly = "monthly"
	BillingCycleYearly  = "yearly"
)

// Plan is a subscription tier a storefront owner can be billed on.
type Plan struct {
	gorm.Model
	Name         string        `gorm:"not null;uniqueIndex" json:"name"`
	Description  string        `gorm:"not null" json:"description"`
	PriceAmount  float64       `gorm:"not null;check:price_amount >= 0" json:"price_amount"`
	Currency     string        `gorm:"default:'USD'" json:"currency"`
	BillingCycle string        `gorm:"not null" json:"billing_cycle"`
	Features     []PlanFeature `json:"features" gorm:"foreignKey:PlanID"`
	IsActive     bool          `json:"is_active" gorm:"default:true"`
}

// PlanFeature is one capability included in a plan.
type PlanFeature struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PlanID      uint   `gorm:"not null;index" json:"plan_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled" gorm:"default:true"`
}

// ValidCurrency reports whether c is a supported plan currency.
func ValidCurrency(c string) bool {
	switch c {
	case "USD", "EUR", "GBP":
		return true
	}
	return false
}

// ValidBillingCycle reports whether b is a supported billing cycle.
func ValidBillingCycle(b string) bool {
	return b == BillingCycleMonthly || b == BillingCycleYearly
}
