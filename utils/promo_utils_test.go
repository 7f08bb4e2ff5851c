package utils

import (
	"testing"
	"time"

	"github.com/storecart/storecart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promoFixture(mutate func(*models.PromoCode)) *models.PromoCode {
	promo := &models.PromoCode{
		Code:      "SAVE10",
		Type:      models.PromoTypePercentage,
		Value:     10,
		ValidFrom: time.Now().Add(-24 * time.Hour),
		ValidTo:   time.Now().Add(24 * time.Hour),
	}
	if mutate != nil {
		mutate(promo)
	}
	return promo
}

func TestComputeDiscount(t *testing.T) {
	t.Run("percentage of subtotal", func(t *testing.T) {
		promo := promoFixture(nil)
		assert.InDelta(t, 20.0, ComputeDiscount(200, promo), 0.001)
	})

	t.Run("fixed amount ignores subtotal", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.Type = models.PromoTypeFixed
			p.Value = 15
		})
		assert.InDelta(t, 15.0, ComputeDiscount(200, promo), 0.001)
		assert.InDelta(t, 15.0, ComputeDiscount(50, promo), 0.001)
	})

	t.Run("max discount caps percentage", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.Value = 50
			p.MaxDiscountAmount = 100
		})
		assert.InDelta(t, 100.0, ComputeDiscount(1000, promo), 0.001)
	})

	t.Run("zero max discount means no cap", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.Value = 50
			p.MaxDiscountAmount = 0
		})
		assert.InDelta(t, 500.0, ComputeDiscount(1000, promo), 0.001)
	})

	t.Run("cap below percentage result", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.MaxDiscountAmount = 5
		})
		assert.InDelta(t, 5.0, ComputeDiscount(200, promo), 0.001)
	})
}

func TestFinalAmount(t *testing.T) {
	assert.InDelta(t, 180.0, FinalAmount(200, 20), 0.001)
	assert.InDelta(t, 0.0, FinalAmount(200, 200), 0.001)

	// A fixed discount larger than the subtotal floors at zero, it never
	// goes negative.
	assert.InDelta(t, 0.0, FinalAmount(50, 80), 0.001)
}

func TestValidatePromoForCart(t *testing.T) {
	now := time.Now()

	t.Run("valid promo passes", func(t *testing.T) {
		promo := promoFixture(nil)
		assert.NoError(t, ValidatePromoForCart(promo, 100, now))
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.ValidFrom = now
			p.ValidTo = now
		})
		assert.NoError(t, ValidatePromoForCart(promo, 100, now))
	})

	t.Run("expired promo is generic invalid", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.ValidFrom = now.Add(-48 * time.Hour)
			p.ValidTo = now.Add(-24 * time.Hour)
		})
		err := ValidatePromoForCart(promo, 100, now)
		require.Error(t, err)
		assert.True(t, IsInvalidPromoError(err))
		assert.Equal(t, "The promo code is invalid.", err.Error())
	})

	t.Run("not yet valid promo is generic invalid", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.ValidFrom = now.Add(24 * time.Hour)
			p.ValidTo = now.Add(48 * time.Hour)
		})
		err := ValidatePromoForCart(promo, 100, now)
		require.Error(t, err)
		assert.Equal(t, "The promo code is invalid.", err.Error())
	})

	t.Run("exhausted promo is generic invalid", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.UsageLimit = 5
			p.UsageCount = 5
		})
		err := ValidatePromoForCart(promo, 100, now)
		require.Error(t, err)
		assert.Equal(t, "The promo code is invalid.", err.Error())
	})

	t.Run("zero usage limit never exhausts", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.UsageLimit = 0
			p.UsageCount = 100000
		})
		assert.NoError(t, ValidatePromoForCart(promo, 100, now))
	})

	t.Run("minimum purchase failure keeps its own message", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.MinPurchaseAmount = 150
		})
		err := ValidatePromoForCart(promo, 100, now)
		require.Error(t, err)
		assert.True(t, IsInvalidPromoError(err))
		assert.Equal(t, "Minimum purchase amount not met", err.Error())
	})

	t.Run("subtotal equal to minimum passes", func(t *testing.T) {
		promo := promoFixture(func(p *models.PromoCode) {
			p.MinPurchaseAmount = 100
		})
		assert.NoError(t, ValidatePromoForCart(promo, 100, now))
	})
}
