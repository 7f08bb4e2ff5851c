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

// CategoryRequest represents the request body for category writes.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
}

// CreateCategory creates a category in the caller's storefront.
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	category := models.Category{
		Name:         utils.SanitizeString(req.Name),
		Description:  utils.SanitizeString(req.Description),
		StorefrontID: storefrontID,
	}

	repo := repository.New[models.Category](config.DB)
	if err := repo.Create(&category); err != nil {
		utils.LogError("Failed to create category in storefront %d: %v", storefrontID, err)
		utils.SendAppError(c, err)
		return
	}

	utils.Created(c, "Category created successfully", category)
}

// ListCategories returns the storefront's categories with pagination.
func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Category](config.DB)
	page, err := repo.Paginate(
		repository.Filter{"storefront_id": storefrontID},
		repository.PageOptions{
			Page:         params.Page,
			Limit:        params.Limit,
			Sort:         params.SortClause("name", "created_at"),
			Search:       params.Search,
			SearchFields: []string{"name", "description"},
		},
	)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Categories retrieved successfully", gin.H{"categories": page.Data}, page.Meta)
}

// CategoryDropdown projects the storefront's categories to options.
func CategoryDropdown(c *gin.Context) {
	utils.LogInfo("CategoryDropdown called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Category](config.DB)
	page, err := repo.Dropdown(
		repository.Filter{"storefront_id": storefrontID},
		c.DefaultQuery("select", "name"),
		repository.PageOptions{Page: params.Page, Limit: params.Limit},
	)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Categories retrieved successfully", gin.H{"options": page.Data}, page.Meta)
}

// UpdateCategory updates a category of the caller's storefront.
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	repo := repository.New[models.Category](config.DB)
	category, err := repo.FindOne(repository.Filter{"id": id, "storefront_id": storefrontID})
	if err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	err = repo.Updates(category.ID, map[string]interface{}{
		"name":        utils.SanitizeString(req.Name),
		"description": utils.SanitizeString(req.Description),
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.Success(c, "Category updated successfully", nil)
}

// DeleteCategory soft-deletes a category of the caller's storefront.
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID")
		return
	}

	repo := repository.New[models.Category](config.DB)
	category, err := repo.FindOne(repository.Filter{"id": id, "storefront_id": storefrontID})
	if err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	productRepo := repository.New[models.Product](config.DB)
	count, err := productRepo.Count(repository.Filter{"category_id": category.ID})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	if count > 0 {
		utils.Conflict(c, "Category still has products")
		return
	}

	if err := repo.Delete(category.ID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.Success(c, "Category deleted successfully", nil)
}
