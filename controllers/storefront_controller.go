package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/middleware"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
)

// StorefrontRequest represents the request body for storefront writes.
type StorefrontRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
}

// CreateStorefront creates a storefront owned by the caller and binds the
// caller to it.
func CreateStorefront(c *gin.Context) {
	utils.LogInfo("CreateStorefront called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req StorefrontRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	storefront := models.Storefront{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		UserID:      user.ID,
	}

	repo := repository.New[models.Storefront](config.DB)
	if err := repo.Create(&storefront); err != nil {
		utils.LogError("Failed to create storefront for user ID: %d: %v", user.ID, err)
		utils.SendAppError(c, err)
		return
	}

	// Bind the owner to the new tenant so it becomes their default scope.
	userRepo := repository.New[models.User](config.DB)
	if err := userRepo.Updates(user.ID, map[string]interface{}{"storefront_id": storefront.ID}); err != nil {
		utils.LogError("Failed to bind user %d to storefront %d: %v", user.ID, storefront.ID, err)
	}

	utils.LogInfo("Storefront %d created by user ID: %d", storefront.ID, user.ID)
	utils.Created(c, "Storefront created successfully", storefront)
}

// GetStorefront returns one storefront.
func GetStorefront(c *gin.Context) {
	utils.LogInfo("GetStorefront called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid storefront ID")
		return
	}

	repo := repository.New[models.Storefront](config.DB)
	storefront, err := repo.FindByID(uint(id), "User")
	if err != nil {
		utils.NotFound(c, "Storefront not found")
		return
	}

	utils.Success(c, "Storefront retrieved successfully", storefront)
}

// ListStorefronts returns storefronts in the pagination envelope.
func ListStorefronts(c *gin.Context) {
	utils.LogInfo("ListStorefronts called")

	params := utils.GetPageParams(c)
	repo := repository.New[models.Storefront](config.DB)
	page, err := repo.Paginate(nil, repository.PageOptions{
		Page:         params.Page,
		Limit:        params.Limit,
		Sort:         params.SortClause("name", "created_at"),
		Search:       params.Search,
		SearchFields: []string{"name", "description"},
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Storefronts retrieved successfully", gin.H{"storefronts": page.Data}, page.Meta)
}

// StorefrontDropdown projects storefronts to {value, label} pairs.
func StorefrontDropdown(c *gin.Context) {
	utils.LogInfo("StorefrontDropdown called")

	params := utils.GetPageParams(c)
	repo := repository.New[models.Storefront](config.DB)
	page, err := repo.Dropdown(nil, c.DefaultQuery("select", "name"), repository.PageOptions{
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Storefronts retrieved successfully", gin.H{"options": page.Data}, page.Meta)
}

// UpdateStorefront updates a storefront owned by the caller.
func UpdateStorefront(c *gin.Context) {
	utils.LogInfo("UpdateStorefront called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid storefront ID")
		return
	}

	var req StorefrontRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	repo := repository.New[models.Storefront](config.DB)
	storefront, err := repo.FindOne(repository.Filter{"id": id, "user_id": user.ID})
	if err != nil {
		utils.NotFound(c, "Storefront not found")
		return
	}

	err = repo.Updates(storefront.ID, map[string]interface{}{
		"name":        utils.SanitizeString(req.Name),
		"description": utils.SanitizeString(req.Description),
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.Success(c, "Storefront updated successfully", nil)
}

// DeleteStorefront soft-deletes a storefront owned by the caller.
func DeleteStorefront(c *gin.Context) {
	utils.LogInfo("DeleteStorefront called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid storefront ID")
		return
	}

	repo := repository.New[models.Storefront](config.DB)
	storefront, err := repo.FindOne(repository.Filter{"id": id, "user_id": user.ID})
	if err != nil {
		utils.NotFound(c, "Storefront not found")
		return
	}

	if err := repo.Delete(storefront.ID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Storefront %d deleted by user ID: %d", storefront.ID, user.ID)
	utils.Success(c, "Storefront deleted successfully", nil)
}

// SelectStorefront switches the caller's acting tenant for subsequent
// requests.
func SelectStorefront(c *gin.Context) {
	utils.LogInfo("SelectStorefront called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid storefront ID")
		return
	}

	repo := repository.New[models.Storefront](config.DB)
	storefront, err := repo.FindByID(uint(id))
	if err != nil {
		utils.NotFound(c, "Storefront not found")
		return
	}

	middleware.SelectStorefront(c, storefront.ID)
	utils.LogInfo("Storefront %d selected as acting tenant", storefront.ID)
	utils.Success(c, "Storefront selected successfully", gin.H{"storefront_id": storefront.ID})
}
