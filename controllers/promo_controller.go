package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/middleware"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
)

// CreatePromoRequest represents the request body for creating a promo code
type CreatePromoRequest struct {
	Code              string    `json:"code" binding:"required,min=4"`
	Description       string    `json:"description"`
	Type              string    `json:"type" binding:"required,oneof=percentage fixed"`
	Value             float64   `json:"value" binding:"required,gte=0"`
	MinPurchaseAmount float64   `json:"min_purchase_amount" binding:"gte=0"`
	MaxDiscountAmount float64   `json:"max_discount_amount" binding:"gte=0"`
	UsageLimit        int       `json:"usage_limit" binding:"gte=0"`
	ValidFrom         time.Time `json:"valid_from" binding:"required"`
	ValidTo           time.Time `json:"valid_to" binding:"required"`
}

// CreatePromo creates a promotion scoped to the caller's storefront.
func CreatePromo(c *gin.Context) {
	utils.LogInfo("CreatePromo called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	var req CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid promo create request: %v", err)
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidatePromoValue(req.Type, req.Value); err != nil {
		utils.LogError("Invalid promo value for code %s: %v", req.Code, err)
		utils.BadRequest(c, err.Error())
		return
	}
	if req.ValidTo.Before(req.ValidFrom) {
		utils.BadRequest(c, "validTo must not be before validFrom")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	repo := repository.New[models.PromoCode](config.DB)
	if _, err := repo.FindOne(repository.Filter{"code": code, "storefront_id": storefrontID}); err == nil {
		utils.LogError("Promo code already exists: %s (storefront %d)", code, storefrontID)
		utils.Conflict(c, "Promo code already exists for this storefront")
		return
	}

	promo := models.PromoCode{
		Code:              code,
		Description:       req.Description,
		Type:              req.Type,
		Value:             req.Value,
		MinPurchaseAmount: req.MinPurchaseAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		ValidFrom:         req.ValidFrom,
		ValidTo:           req.ValidTo,
		StorefrontID:      storefrontID,
	}

	if err := repo.Create(&promo); err != nil {
		utils.LogError("Failed to create promo %s: %v", code, err)
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Promo %s created for storefront %d", code, storefrontID)
	utils.Created(c, "Promo code created successfully", promo)
}

// ListPromos returns the storefront's promotions in the pagination envelope.
func ListPromos(c *gin.Context) {
	utils.LogInfo("ListPromos called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.PromoCode](config.DB)
	page, err := repo.Paginate(
		repository.Filter{"storefront_id": storefrontID},
		repository.PageOptions{
			Page:         params.Page,
			Limit:        params.Limit,
			Sort:         params.SortClause("code", "valid_from", "valid_to", "usage_count", "created_at"),
			Search:       params.Search,
			SearchFields: []string{"code", "description"},
		},
	)
	if err != nil {
		utils.LogError("Failed to list promos for storefront %d: %v", storefrontID, err)
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Promo codes retrieved successfully", gin.H{"promos": page.Data}, page.Meta)
}

// PromoDropdown projects the storefront's promos to {value, label} pairs.
func PromoDropdown(c *gin.Context) {
	utils.LogInfo("PromoDropdown called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.PromoCode](config.DB)
	page, err := repo.Dropdown(
		repository.Filter{"storefront_id": storefrontID},
		c.DefaultQuery("select", "code"),
		repository.PageOptions{Page: params.Page, Limit: params.Limit},
	)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Promo codes retrieved successfully", gin.H{"options": page.Data}, page.Meta)
}

// UpdatePromoRequest represents the mutable promo fields.
type UpdatePromoRequest struct {
	Description       *string    `json:"description"`
	Value             *float64   `json:"value"`
	MinPurchaseAmount *float64   `json:"min_purchase_amount"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"`
	UsageLimit        *int       `json:"usage_limit"`
	ValidFrom         *time.Time `json:"valid_from"`
	ValidTo           *time.Time `json:"valid_to"`
}

// UpdatePromo updates a promotion belonging to the caller's storefront.
// The code itself and the usage counter are immutable here.
func UpdatePromo(c *gin.Context) {
	utils.LogInfo("UpdatePromo called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	promoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid promo ID")
		return
	}

	var req UpdatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	repo := repository.New[models.PromoCode](config.DB)
	promo, err := repo.FindOne(repository.Filter{"id": promoID, "storefront_id": storefrontID})
	if err != nil {
		utils.LogError("Promo %d not found for storefront %d", promoID, storefrontID)
		utils.SendAppError(c, err)
		return
	}

	values := map[string]interface{}{}
	if req.Description != nil {
		values["description"] = *req.Description
	}
	if req.Value != nil {
		if err := utils.ValidatePromoValue(promo.Type, *req.Value); err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		values["value"] = *req.Value
	}
	if req.MinPurchaseAmount != nil {
		values["min_purchase_amount"] = *req.MinPurchaseAmount
	}
	if req.MaxDiscountAmount != nil {
		values["max_discount_amount"] = *req.MaxDiscountAmount
	}
	if req.UsageLimit != nil {
		values["usage_limit"] = *req.UsageLimit
	}
	if req.ValidFrom != nil {
		values["valid_from"] = *req.ValidFrom
	}
	if req.ValidTo != nil {
		values["valid_to"] = *req.ValidTo
	}
	if len(values) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := repo.Updates(promo.ID, values); err != nil {
		utils.SendAppError(c, err)
		return
	}

	updated, err := repo.FindByID(promo.ID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.Success(c, "Promo code updated successfully", updated)
}

// DeletePromo soft-deletes a promotion of the caller's storefront.
func DeletePromo(c *gin.Context) {
	utils.LogInfo("DeletePromo called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	promoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid promo ID")
		return
	}

	repo := repository.New[models.PromoCode](config.DB)
	promo, err := repo.FindOne(repository.Filter{"id": promoID, "storefront_id": storefrontID})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	if err := repo.Delete(promo.ID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Promo %d deleted from storefront %d", promo.ID, storefrontID)
	utils.Success(c, "Promo code deleted successfully", nil)
}
