package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCartSubtotal(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{Quantity: 2, Price: 49.50},
			{Quantity: 1, Price: 101.00},
		},
	}
	assert.InDelta(t, 200.0, cart.Subtotal(), 0.001)

	empty := Cart{}
	assert.InDelta(t, 0.0, empty.Subtotal(), 0.001)
}

func TestCartTotalDiscount(t *testing.T) {
	cart := Cart{
		AppliedPromos: []CartPromo{
			{Discount: 20},
			{Discount: 5.5},
		},
	}
	assert.InDelta(t, 25.5, cart.TotalDiscount(), 0.001)
}

func TestPromoValidAt(t *testing.T) {
	now := time.Now()
	promo := PromoCode{ValidFrom: now.Add(-time.Hour), ValidTo: now.Add(time.Hour)}

	assert.True(t, promo.ValidAt(now))
	assert.True(t, promo.ValidAt(promo.ValidFrom))
	assert.True(t, promo.ValidAt(promo.ValidTo))
	assert.False(t, promo.ValidAt(promo.ValidFrom.Add(-time.Second)))
	assert.False(t, promo.ValidAt(promo.ValidTo.Add(time.Second)))
}

func TestPromoExhausted(t *testing.T) {
	assert.False(t, (&PromoCode{UsageLimit: 0, UsageCount: 99}).Exhausted())
	assert.False(t, (&PromoCode{UsageLimit: 5, UsageCount: 4}).Exhausted())
	assert.True(t, (&PromoCode{UsageLimit: 5, UsageCount: 5}).Exhausted())
	assert.True(t, (&PromoCode{UsageLimit: 5, UsageCount: 6}).Exhausted())
}

func TestRolePermissions(t *testing.T) {
	role := Role{
		Permissions: []Permission{
			{Module: ModuleProduct, Operations: "CR"},
			{Module: ModuleOrder, Operations: OpCRUD},
		},
	}

	assert.True(t, role.HasPermission(ModuleProduct, OpCreate))
	assert.True(t, role.HasPermission(ModuleProduct, OpRead))
	assert.False(t, role.HasPermission(ModuleProduct, OpDelete))
	assert.True(t, role.HasPermission(ModuleOrder, OpDelete))
	assert.False(t, role.HasPermission(ModuleCart, OpRead))
}
