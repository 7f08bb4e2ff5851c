package models

import (
	"gorm.io/gorm"
)

// Cart holds a user's in-progress purchase. Amount is the persisted final
// amount after promo discounts; Subtotal is always derived from the items.
type Cart struct {
	gorm.Model
	UserID        uint        `gorm:"not null" json:"user_id"`
	User          User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items         []CartItem  `json:"items" gorm:"foreignKey:CartID"`
	AppliedPromos []CartPromo `json:"applied_promo_codes" gorm:"foreignKey:CartID"`
	Amount        float64     `json:"amount"`
}

// CartItem is one product line in a cart. Price is the unit price captured
// when the item was added.
type CartItem struct {
	gorm.Model
	CartID    uint    `gorm:"not null;index" json:"cart_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Price     float64 `gorm:"not null;check:price >= 0" json:"price"`
}

// CartPromo records a promotion applied to a cart and the discount it
// produced at application time.
type CartPromo struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	CartID   uint      `gorm:"not null;index" json:"cart_id"`
	PromoID  uint      `gorm:"not null" json:"promo_id"`
	Promo    PromoCode `json:"promo,omitempty" gorm:"foreignKey:PromoID"`
	Discount float64   `gorm:"not null;check:discount >= 0" json:"discount"`
}

// Subtotal sums price x quantity over the cart's items, before discounts.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// TotalDiscount sums the discounts of every applied promotion.
func (c *Cart) TotalDiscount() float64 {
	var sum float64
	for _, applied := range c.AppliedPromos {
		sum += applied.Discount
	}
	return sum
}
