package utils

import (
	"time"

	"github.com/storecart/storecart/models"
)

// ComputeDiscount calculates the discount a promo yields on a subtotal.
// Percentage promos take value% of the subtotal, fixed promos take the
// value itself; a configured MaxDiscountAmount caps the result.
func ComputeDiscount(subtotal float64, promo *models.PromoCode) float64 {
	var discount float64
	if promo.Type == models.PromoTypePercentage {
		discount = subtotal * (promo.Value / 100)
	} else {
		discount = promo.Value
	}

	if promo.MaxDiscountAmount > 0 && discount > promo.MaxDiscountAmount {
		discount = promo.MaxDiscountAmount
	}
	return discount
}

// FinalAmount returns the cart total after discount, floored at zero.
func FinalAmount(subtotal, discount float64) float64 {
	final := subtotal - discount
	if final < 0 {
		return 0
	}
	return final
}

// ValidatePromoForCart checks every application-time condition and returns
// the error the caller should surface. Expired, not-yet-valid and exhausted
// codes all collapse into the generic invalid-promo error on purpose; only
// the minimum-purchase failure carries its own message.
func ValidatePromoForCart(promo *models.PromoCode, subtotal float64, now time.Time) error {
	if !promo.ValidAt(now) {
		return InvalidPromoError()
	}
	if promo.Exhausted() {
		return InvalidPromoError()
	}
	if subtotal < promo.MinPurchaseAmount {
		return InvalidPromoMinPurchaseError()
	}
	return nil
}
