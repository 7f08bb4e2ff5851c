package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/middleware"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplyPromoRequest represents the request body for applying a promo code
type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// consumePromoUsage bumps the usage counter with a conditional update.
// Zero rows affected means the limit was reached between the caller's read
// and now, so the application must not stand.
func consumePromoUsage(tx *gorm.DB, promoID uint) error {
	result := tx.Model(&models.PromoCode{}).
		Where("id = ? AND (usage_limit = 0 OR usage_count < usage_limit)", promoID).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return utils.StorageError("Failed to increment promo usage", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.InvalidPromoError()
	}
	return nil
}

// ApplyPromoToCart validates a promo code against the cart and applies its
// discount. The whole read-validate-apply-increment sequence runs in one
// transaction; the usage counter is bumped with a conditional update so two
// concurrent applications cannot push a promo past its usage limit.
func ApplyPromoToCart(c *gin.Context) {
	utils.LogInfo("ApplyPromoToCart called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.LogError("No storefront context for user ID: %d", user.ID)
		utils.BadRequest(c, "No storefront selected")
		return
	}

	// The handler is mounted both cart-scoped (:id) and at the
	// promo-application path (:cartId).
	idParam := c.Param("id")
	if idParam == "" {
		idParam = c.Param("cartId")
	}
	cartID, err := strconv.Atoi(idParam)
	if err != nil {
		utils.LogError("Invalid cart ID in promo application: %v", err)
		utils.BadRequest(c, "Invalid cart ID")
		return
	}

	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. code is required")
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	utils.LogInfo("Applying promo code %s to cart %d for user ID: %d", code, cartID, user.ID)

	var cart models.Cart
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Load the cart with its lines and previously applied promos.
		// Soft-deleted carts are filtered by the DeletedAt convention.
		if err := tx.
			Preload("Items.Product").
			Preload("AppliedPromos.Promo").
			Where("id = ? AND user_id = ?", cartID, user.ID).
			First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.LogError("Cart %d not found for user ID: %d", cartID, user.ID)
				return utils.NotFoundError("Cart not found")
			}
			return utils.StorageError("Failed to fetch cart", err)
		}

		// Lock the promo row for the rest of the transaction so the
		// usage check and the increment see the same counter.
		var promo models.PromoCode
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("UPPER(code) = ? AND storefront_id = ?", code, storefrontID).
			First(&promo).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.LogError("Promo code %s not found for storefront %d", code, storefrontID)
				return utils.InvalidPromoError()
			}
			return utils.StorageError("Failed to fetch promo code", err)
		}

		subtotal := cart.Subtotal()
		if err := utils.ValidatePromoForCart(&promo, subtotal, time.Now()); err != nil {
			utils.LogError("Promo %s rejected for cart %d: %v (valid %s..%s, used %d/%d, subtotal %.2f, min %.2f)",
				code, cart.ID, err,
				promo.ValidFrom.Format("2006-01-02"), promo.ValidTo.Format("2006-01-02"),
				promo.UsageCount, promo.UsageLimit, subtotal, promo.MinPurchaseAmount)
			return err
		}

		discount := utils.ComputeDiscount(subtotal, &promo)

		applied := models.CartPromo{
			CartID:   cart.ID,
			PromoID:  promo.ID,
			Discount: discount,
		}
		if err := tx.Create(&applied).Error; err != nil {
			return utils.StorageError("Failed to record applied promo", err)
		}

		cart.Amount = utils.FinalAmount(subtotal, discount)
		if err := tx.Model(&cart).Update("amount", cart.Amount).Error; err != nil {
			return utils.StorageError("Failed to update cart amount", err)
		}

		if err := consumePromoUsage(tx, promo.ID); err != nil {
			if utils.IsInvalidPromoError(err) {
				utils.LogError("Promo %s exhausted during application to cart %d", code, cart.ID)
			}
			return err
		}

		applied.Promo = promo
		cart.AppliedPromos = append(cart.AppliedPromos, applied)
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	subtotal := cart.Subtotal()
	utils.LogInfo("Promo %s applied to cart %d, final amount %.2f", code, cart.ID, cart.Amount)
	utils.Success(c, "Promo code applied successfully", gin.H{
		"cart":           cart,
		"subtotal":       subtotal,
		"total_discount": cart.TotalDiscount(),
		"final_amount":   cart.Amount,
	})
}
