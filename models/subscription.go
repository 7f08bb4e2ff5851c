package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// Subscription payment states.
const (
	SubscriptionPaymentPending   = "pending"
	SubscriptionPaymentCompleted = "completed"
	SubscriptionPaymentFailed    = "failed"
)

// Subscription ties a user to a plan for one billing term. A user holds at
// most one active subscription at a time.
type Subscription struct {
	gorm.Model
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PlanID        uint      `gorm:"not null;index" json:"plan_id"`
	Plan          Plan      `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	StartDate     time.Time `gorm:"not null" json:"start_date"`
	EndDate       time.Time `gorm:"not null" json:"end_date"`
	Status        string    `gorm:"default:'active'" json:"status"`
	PaymentStatus string    `gorm:"default:'pending'" json:"payment_status"`
	PaymentRef    string    `json:"payment_ref,omitempty"`
	AutoRenew     bool      `json:"auto_renew" gorm:"default:false"`
}

// CurrentAt reports whether the subscription covers the instant t.
func (s *Subscription) CurrentAt(t time.Time) bool {
	return s.Status == SubscriptionActive && !t.Before(s.StartDate) && t.Before(s.EndDate)
}

// SubscriptionTermEnd returns when a term starting at start runs out for
// the given billing cycle.
func SubscriptionTermEnd(start time.Time, billingCycle string) time.Time {
	if billingCycle == BillingCycleYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}
