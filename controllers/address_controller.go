package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/middleware"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
	"gorm.io/gorm"
)

// AddressRequest represents the request body for creating or updating an
// address.
type AddressRequest struct {
	StreetAddress string `json:"street_address" binding:"required"`
	Apartment     string `json:"apartment"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state" binding:"required"`
	PostalCode    string `json:"postal_code" binding:"required"`
	Country       string `json:"country" binding:"required"`
	IsDefault     bool   `json:"is_default"`
}

// AddAddress creates a shipping address for the current user.
func AddAddress(c *gin.Context) {
	utils.LogInfo("AddAddress called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !utils.ValidatePostalCode(req.PostalCode) {
		utils.ValidationError(c, "Invalid postal code")
		return
	}

	address := models.Address{
		UserID:        user.ID,
		StreetAddress: utils.SanitizeString(req.StreetAddress),
		Apartment:     utils.SanitizeString(req.Apartment),
		City:          utils.SanitizeString(req.City),
		State:         utils.SanitizeString(req.State),
		PostalCode:    req.PostalCode,
		Country:       utils.SanitizeString(req.Country),
		IsActive:      true,
		IsDefault:     req.IsDefault,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				Update("is_default", false).Error; err != nil {
				return utils.StorageError("Failed to clear default address", err)
			}
		}
		if err := tx.Create(&address).Error; err != nil {
			return utils.StorageError("Failed to create address", err)
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Address %d created for user ID: %d", address.ID, user.ID)
	utils.Created(c, "Address added successfully", address)
}

// ListAddresses returns the current user's addresses.
func ListAddresses(c *gin.Context) {
	utils.LogInfo("ListAddresses called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Address](config.DB)
	page, err := repo.Paginate(repository.Filter{"user_id": user.ID, "is_active": true}, repository.PageOptions{
		Page:  params.Page,
		Limit: params.Limit,
		Sort:  "is_default DESC, created_at DESC",
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Addresses retrieved successfully", gin.H{"addresses": page.Data}, page.Meta)
}

// UpdateAddress edits one of the user's addresses.
func UpdateAddress(c *gin.Context) {
	utils.LogInfo("UpdateAddress called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !utils.ValidatePostalCode(req.PostalCode) {
		utils.ValidationError(c, "Invalid postal code")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", id, user.ID).First(&address).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("Address not found")
			}
			return utils.StorageError("Failed to fetch address", err)
		}
		if req.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				Update("is_default", false).Error; err != nil {
				return utils.StorageError("Failed to clear default address", err)
			}
		}
		updates := map[string]interface{}{
			"street_address": utils.SanitizeString(req.StreetAddress),
			"apartment":      utils.SanitizeString(req.Apartment),
			"city":           utils.SanitizeString(req.City),
			"state":          utils.SanitizeString(req.State),
			"postal_code":    req.PostalCode,
			"country":        utils.SanitizeString(req.Country),
			"is_default":     req.IsDefault,
		}
		if err := tx.Model(&address).Updates(updates).Error; err != nil {
			return utils.StorageError("Failed to update address", err)
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Address %d updated for user ID: %d", id, user.ID)
	utils.Success(c, "Address updated successfully", nil)
}

// DeleteAddress soft-deletes one of the user's addresses.
func DeleteAddress(c *gin.Context) {
	utils.LogInfo("DeleteAddress called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID")
		return
	}

	repo := repository.New[models.Address](config.DB)
	if _, err := repo.FindOne(repository.Filter{"id": id, "user_id": user.ID}); err != nil {
		utils.NotFound(c, "Address not found")
		return
	}
	if err := repo.Delete(uint(id)); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Address %d deleted for user ID: %d", id, user.ID)
	utils.Success(c, "Address deleted successfully", nil)
}
