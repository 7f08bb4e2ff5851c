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

// CartItemRequest is one product line in a cart payload.
type CartItemRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	Price     float64 `json:"price" binding:"gte=0"`
}

// CreateCartRequest represents the request body for creating a cart
type CreateCartRequest struct {
	Items []CartItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateCart creates a cart for the authenticated user. Unit prices are
// captured from the catalog, not trusted from the client.
func CreateCart(c *gin.Context) {
	utils.LogInfo("CreateCart called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid cart create request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	var cart models.Cart
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		cart = models.Cart{UserID: user.ID}

		productRepo := repository.New[models.Product](tx)
		for _, line := range req.Items {
			product, err := productRepo.FindByID(line.ProductID)
			if err != nil {
				utils.LogError("Product %d not found while building cart for user ID: %d", line.ProductID, user.ID)
				return utils.NotFoundError("Product not found")
			}
			if product.Stock < line.Quantity {
				return utils.InvalidArgumentError("Insufficient stock for product: " + product.Name)
			}
			cart.Items = append(cart.Items, models.CartItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
		}

		cart.Amount = cart.Subtotal()
		if err := tx.Create(&cart).Error; err != nil {
			return utils.StorageError("Failed to create cart", err)
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Cart %d created for user ID: %d with %d items", cart.ID, user.ID, len(cart.Items))
	utils.Created(c, "Cart created successfully", cart)
}

// GetCart returns one of the user's carts with items and applied promos.
func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	cartID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid cart ID")
		return
	}

	repo := repository.New[models.Cart](config.DB)
	cart, err := repo.FindOne(
		repository.Filter{"id": cartID, "user_id": user.ID},
		"Items.Product", "AppliedPromos.Promo",
	)
	if err != nil {
		utils.LogError("Cart %d not found for user ID: %d", cartID, user.ID)
		utils.NotFound(c, "Cart not found")
		return
	}

	utils.Success(c, "Cart retrieved successfully", gin.H{
		"cart":           cart,
		"subtotal":       cart.Subtotal(),
		"total_discount": cart.TotalDiscount(),
		"final_amount":   cart.Amount,
	})
}

// ListCarts returns the user's carts in the pagination envelope.
func ListCarts(c *gin.Context) {
	utils.LogInfo("ListCarts called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Cart](config.DB)
	page, err := repo.Paginate(
		repository.Filter{"user_id": user.ID},
		repository.PageOptions{
			Page:     params.Page,
			Limit:    params.Limit,
			Sort:     params.SortClause("amount", "created_at", "updated_at"),
			Preloads: []string{"Items.Product", "AppliedPromos.Promo"},
		},
	)
	if err != nil {
		utils.LogError("Failed to list carts for user ID: %d: %v", user.ID, err)
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Carts retrieved successfully", gin.H{"carts": page.Data}, page.Meta)
}

// UpdateCart replaces the cart's items. Applied promotions are cleared
// because the discounts were computed against the old subtotal.
func UpdateCart(c *gin.Context) {
	utils.LogInfo("UpdateCart called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	cartID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid cart ID")
		return
	}

	var req CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid cart update request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	var cart models.Cart
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", cartID, user.ID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("Cart not found")
			}
			return utils.StorageError("Failed to fetch cart", err)
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return utils.StorageError("Failed to clear cart items", err)
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartPromo{}).Error; err != nil {
			return utils.StorageError("Failed to clear applied promos", err)
		}

		productRepo := repository.New[models.Product](tx)
		cart.Items = nil
		cart.AppliedPromos = nil
		for _, line := range req.Items {
			product, err := productRepo.FindByID(line.ProductID)
			if err != nil {
				return utils.NotFoundError("Product not found")
			}
			if product.Stock < line.Quantity {
				return utils.InvalidArgumentError("Insufficient stock for product: " + product.Name)
			}
			cart.Items = append(cart.Items, models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
		}

		if err := tx.Create(&cart.Items).Error; err != nil {
			return utils.StorageError("Failed to save cart items", err)
		}

		cart.Amount = cart.Subtotal()
		if err := tx.Model(&cart).Update("amount", cart.Amount).Error; err != nil {
			return utils.StorageError("Failed to update cart amount", err)
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Cart %d updated for user ID: %d", cart.ID, user.ID)
	utils.Success(c, "Cart updated successfully", cart)
}

// DeleteCart soft-deletes one of the user's carts.
func DeleteCart(c *gin.Context) {
	utils.LogInfo("DeleteCart called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	cartID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid cart ID")
		return
	}

	repo := repository.New[models.Cart](config.DB)
	cart, err := repo.FindOne(repository.Filter{"id": cartID, "user_id": user.ID})
	if err != nil {
		utils.NotFound(c, "Cart not found")
		return
	}

	if err := repo.Delete(cart.ID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Cart %d deleted for user ID: %d", cart.ID, user.ID)
	utils.Success(c, "Cart deleted successfully", nil)
}
