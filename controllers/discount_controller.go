package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/middleware"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
	"gorm.io/gorm"
)

// CreateDiscountRequest represents the request body for creating a
// product-level discount.
type CreateDiscountRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Percentage  float64   `json:"percentage" binding:"required"`
	ValidFrom   time.Time `json:"valid_from" binding:"required"`
	ValidTo     time.Time `json:"valid_to" binding:"required"`
	ProductIDs  []uint    `json:"product_ids"`
}

// CreateDiscount creates a percentage discount over a set of the
// storefront's products.
func CreateDiscount(c *gin.Context) {
	utils.LogInfo("CreateDiscount called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if req.Percentage <= 0 || req.Percentage > 100 {
		utils.ValidationError(c, "Percentage must be between 0 and 100")
		return
	}
	if !req.ValidTo.After(req.ValidFrom) {
		utils.ValidationError(c, "Valid to must be after valid from")
		return
	}

	discount := models.Discount{
		Name:         req.Name,
		Description:  req.Description,
		Percentage:   req.Percentage,
		ValidFrom:    req.ValidFrom,
		ValidTo:      req.ValidTo,
		StorefrontID: storefrontID,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if len(req.ProductIDs) > 0 {
			var products []models.Product
			if err := tx.Where("id IN ? AND storefront_id = ?", req.ProductIDs, storefrontID).Find(&products).Error; err != nil {
				return utils.StorageError("Failed to fetch products", err)
			}
			if len(products) != len(req.ProductIDs) {
				return utils.InvalidArgumentError("One or more products were not found in this storefront")
			}
			discount.Products = products
		}
		if err := tx.Create(&discount).Error; err != nil {
			return utils.StorageError("Failed to create discount", err)
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Discount %d created for storefront %d", discount.ID, storefrontID)
	utils.Created(c, "Discount created successfully", discount)
}

// GetDiscount returns one of the storefront's discounts.
func GetDiscount(c *gin.Context) {
	utils.LogInfo("GetDiscount called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid discount ID")
		return
	}

	repo := repository.New[models.Discount](config.DB)
	discount, err := repo.FindOne(repository.Filter{"id": id, "storefront_id": storefrontID}, "Products")
	if err != nil {
		utils.NotFound(c, "Discount not found")
		return
	}

	utils.Success(c, "Discount retrieved successfully", discount)
}

// ListDiscounts returns the storefront's discounts, optionally only those
// currently in their validity window.
func ListDiscounts(c *gin.Context) {
	utils.LogInfo("ListDiscounts called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Discount](config.DB)

	opts := repository.PageOptions{
		Page:         params.Page,
		Limit:        params.Limit,
		Sort:         params.SortClause("name", "percentage", "valid_to", "created_at"),
		Preloads:     []string{"Products"},
		Search:       params.Search,
		SearchFields: []string{"name", "description"},
	}

	filter := repository.Filter{"storefront_id": storefrontID}
	page, err := repo.Paginate(filter, opts)
	if err != nil {
		utils.LogError("Failed to list discounts: %v", err)
		utils.SendAppError(c, err)
		return
	}

	if c.Query("active") == "true" {
		now := time.Now()
		active := make([]models.Discount, 0, len(page.Data))
		for _, d := range page.Data {
			if !now.Before(d.ValidFrom) && !now.After(d.ValidTo) {
				active = append(active, d)
			}
		}
		page.Data = active
	}

	utils.SuccessWithPagination(c, "Discounts retrieved successfully", gin.H{"discounts": page.Data}, page.Meta)
}

// UpdateDiscountRequest carries the partial update payload for a discount.
type UpdateDiscountRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Percentage  *float64   `json:"percentage"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidTo     *time.Time `json:"valid_to"`
	ProductIDs  *[]uint    `json:"product_ids"`
}

// UpdateDiscount applies a partial update to a discount, replacing its
// product set when product_ids is given.
func UpdateDiscount(c *gin.Context) {
	utils.LogInfo("UpdateDiscount called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid discount ID")
		return
	}

	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if req.Percentage != nil && (*req.Percentage <= 0 || *req.Percentage > 100) {
		utils.ValidationError(c, "Percentage must be between 0 and 100")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var discount models.Discount
		if err := tx.Where("id = ? AND storefront_id = ?", id, storefrontID).First(&discount).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("Discount not found")
			}
			return utils.StorageError("Failed to fetch discount", err)
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Percentage != nil {
			updates["percentage"] = *req.Percentage
		}
		if req.ValidFrom != nil {
			updates["valid_from"] = *req.ValidFrom
		}
		if req.ValidTo != nil {
			updates["valid_to"] = *req.ValidTo
		}
		if len(updates) > 0 {
			if err := tx.Model(&discount).Updates(updates).Error; err != nil {
				return utils.StorageError("Failed to update discount", err)
			}
		}

		if req.ProductIDs != nil {
			var products []models.Product
			if len(*req.ProductIDs) > 0 {
				if err := tx.Where("id IN ? AND storefront_id = ?", *req.ProductIDs, storefrontID).Find(&products).Error; err != nil {
					return utils.StorageError("Failed to fetch products", err)
				}
				if len(products) != len(*req.ProductIDs) {
					return utils.InvalidArgumentError("One or more products were not found in this storefront")
				}
			}
			if err := tx.Model(&discount).Association("Products").Replace(products); err != nil {
				return utils.StorageError("Failed to update discount products", err)
			}
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Discount %d updated", id)
	utils.Success(c, "Discount updated successfully", nil)
}

// DeleteDiscount soft-deletes a discount.
func DeleteDiscount(c *gin.Context) {
	utils.LogInfo("DeleteDiscount called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid discount ID")
		return
	}

	repo := repository.New[models.Discount](config.DB)
	if _, err := repo.FindOne(repository.Filter{"id": id, "storefront_id": storefrontID}); err != nil {
		utils.NotFound(c, "Discount not found")
		return
	}
	if err := repo.Delete(uint(id)); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Discount %d deleted", id)
	utils.Success(c, "Discount deleted successfully", nil)
}
