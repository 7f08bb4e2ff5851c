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

// ProductVariantRequest is one variant line in a product payload.
type ProductVariantRequest struct {
	Name  string  `json:"name" binding:"required"`
	Value string  `json:"value" binding:"required"`
	Stock int     `json:"stock" binding:"gte=0"`
	Price float64 `json:"price" binding:"gte=0"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string                  `json:"name" binding:"required,min=2"`
	Description string                  `json:"description" binding:"required"`
	Price       float64                 `json:"price" binding:"gte=0"`
	Stock       int                     `json:"stock" binding:"gte=0"`
	Featured    bool                    `json:"featured"`
	CategoryID  uint                    `json:"category_id" binding:"required"`
	Images      []string                `json:"images"`
	Variants    []ProductVariantRequest `json:"variants" binding:"dive"`
}

// CreateProduct creates a product in the caller's storefront.
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid product create request: %v", err)
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	categoryRepo := repository.New[models.Category](config.DB)
	if _, err := categoryRepo.FindOne(repository.Filter{"id": req.CategoryID, "storefront_id": storefrontID}); err != nil {
		utils.LogError("Category %d not found in storefront %d", req.CategoryID, storefrontID)
		utils.NotFound(c, "Category not found")
		return
	}

	product := models.Product{
		Name:         utils.SanitizeString(req.Name),
		Description:  utils.SanitizeString(req.Description),
		Price:        req.Price,
		Stock:        req.Stock,
		Featured:     req.Featured,
		CategoryID:   req.CategoryID,
		StorefrontID: storefrontID,
		UserID:       user.ID,
	}
	for _, url := range req.Images {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			Name:  v.Name,
			Value: v.Value,
			Stock: v.Stock,
			Price: v.Price,
		})
	}

	repo := repository.New[models.Product](config.DB)
	if err := repo.Create(&product); err != nil {
		utils.LogError("Failed to create product in storefront %d: %v", storefrontID, err)
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Product %d created in storefront %d", product.ID, storefrontID)
	utils.Created(c, "Product created successfully", product)
}

// GetProduct returns one product from the caller's storefront.
func GetProduct(c *gin.Context) {
	utils.LogInfo("GetProduct called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID")
		return
	}

	repo := repository.New[models.Product](config.DB)
	product, err := repo.FindByID(uint(id), "Category", "Variants", "Images")
	if err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product retrieved successfully", product)
}

// ListProducts returns the storefront's products with pagination, search
// and optional category/featured filters.
func ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	filter := repository.Filter{"storefront_id": storefrontID}
	if categoryID, err := strconv.Atoi(c.Query("category_id")); err == nil {
		filter["category_id"] = categoryID
	}
	if c.Query("featured") == "true" {
		filter["featured"] = true
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Product](config.DB)
	page, err := repo.Paginate(filter, repository.PageOptions{
		Page:         params.Page,
		Limit:        params.Limit,
		Sort:         params.SortClause("name", "price", "stock", "created_at"),
		Search:       params.Search,
		SearchFields: []string{"name", "description"},
		Preloads:     []string{"Category", "Variants", "Images"},
	})
	if err != nil {
		utils.LogError("Failed to list products for storefront %d: %v", storefrontID, err)
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", gin.H{"products": page.Data}, page.Meta)
}

// BrowseProducts is the unauthenticated catalog view of one storefront.
func BrowseProducts(c *gin.Context) {
	utils.LogInfo("BrowseProducts called")

	storefrontID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid storefront ID")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Product](config.DB)
	page, err := repo.Paginate(
		repository.Filter{"storefront_id": storefrontID},
		repository.PageOptions{
			Page:         params.Page,
			Limit:        params.Limit,
			Sort:         params.SortClause("name", "price", "created_at"),
			Search:       params.Search,
			SearchFields: []string{"name", "description"},
			Preloads:     []string{"Category", "Images"},
		},
	)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", gin.H{"products": page.Data}, page.Meta)
}

// ProductDropdown projects the storefront's products to options.
func ProductDropdown(c *gin.Context) {
	utils.LogInfo("ProductDropdown called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Product](config.DB)
	page, err := repo.Dropdown(
		repository.Filter{"storefront_id": storefrontID},
		c.DefaultQuery("select", "name"),
		repository.PageOptions{
			Page:         params.Page,
			Limit:        params.Limit,
			Search:       params.Search,
			SearchFields: []string{"name"},
		},
	)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", gin.H{"options": page.Data}, page.Meta)
}

// UpdateProduct updates a product of the caller's storefront, replacing
// variants and images when provided.
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ? AND storefront_id = ?", id, storefrontID).First(&product).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("Product not found")
			}
			return utils.StorageError("Failed to fetch product", err)
		}

		updates := map[string]interface{}{
			"name":        utils.SanitizeString(req.Name),
			"description": utils.SanitizeString(req.Description),
			"price":       req.Price,
			"stock":       req.Stock,
			"featured":    req.Featured,
			"category_id": req.CategoryID,
		}
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return utils.StorageError("Failed to update product", err)
		}

		if req.Variants != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
				return utils.StorageError("Failed to clear variants", err)
			}
			for _, v := range req.Variants {
				variant := models.ProductVariant{
					ProductID: product.ID,
					Name:      v.Name,
					Value:     v.Value,
					Stock:     v.Stock,
					Price:     v.Price,
				}
				if err := tx.Create(&variant).Error; err != nil {
					return utils.StorageError("Failed to save variant", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.Success(c, "Product updated successfully", nil)
}

// DeleteProduct soft-deletes a product of the caller's storefront.
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID")
		return
	}

	repo := repository.New[models.Product](config.DB)
	product, err := repo.FindOne(repository.Filter{"id": id, "storefront_id": storefrontID})
	if err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if err := repo.Delete(product.ID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Product %d deleted from storefront %d", product.ID, storefrontID)
	utils.Success(c, "Product deleted successfully", nil)
}
