package models

import (
	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Payment methods and statuses.
const (
	PaymentMethodCash         = "Cash"
	PaymentMethodCard         = "Card"
	PaymentMethodBankTransfer = "Bank Transfer"

	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// Order is a placed purchase. Items are snapshots of the cart lines at
// placement time so later catalog edits don't change past orders.
type Order struct {
	gorm.Model
	UserID          uint        `gorm:"not null" json:"user_id"`
	User            User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	StorefrontID    uint        `gorm:"not null" json:"storefront_id"`
	Storefront      Storefront  `json:"storefront,omitempty" gorm:"foreignKey:StorefrontID"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	Amount          float64     `gorm:"not null" json:"amount"`
	AddressID       uint        `gorm:"not null" json:"address_id"`
	Address         Address     `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Status          string      `gorm:"default:'Pending'" json:"status"`
	PaymentMethod   string      `gorm:"not null" json:"payment_method"`
	PaymentStatus   string      `gorm:"default:'Pending'" json:"payment_status"`
	PaymentOrderRef string      `json:"payment_order_ref"`
}

// OrderItem is one product line frozen into an order.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}
