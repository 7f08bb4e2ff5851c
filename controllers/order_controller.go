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

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	CartID        uint   `json:"cart_id" binding:"required"`
	AddressID     uint   `json:"address_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// PlaceOrder converts a cart into an order. Cart lines are snapshotted
// into order items, stock is decremented, and the cart is soft-deleted so
// it cannot be ordered twice.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

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

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if !models.ValidPaymentMethod(req.PaymentMethod) {
		utils.BadRequest(c, "Unsupported payment method")
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items.Product").Preload("AppliedPromos").
			Where("id = ? AND user_id = ?", req.CartID, user.ID).
			First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("Cart not found")
			}
			return utils.StorageError("Failed to fetch cart", err)
		}
		if len(cart.Items) == 0 {
			return utils.InvalidArgumentError("Cart is empty")
		}

		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", req.AddressID, user.ID).First(&address).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("Address not found")
			}
			return utils.StorageError("Failed to fetch address", err)
		}

		order = models.Order{
			UserID:        user.ID,
			StorefrontID:  storefrontID,
			Amount:        cart.Amount,
			AddressID:     address.ID,
			Status:        models.OrderStatusPending,
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: models.PaymentStatusPending,
		}
		for _, item := range cart.Items {
			// Decrement stock, refusing to oversell.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return utils.StorageError("Failed to reserve stock", result.Error)
			}
			if result.RowsAffected == 0 {
				return utils.InvalidArgumentError("Insufficient stock for product: " + item.Product.Name)
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return utils.StorageError("Failed to create order", err)
		}

		if err := tx.Delete(&cart).Error; err != nil {
			return utils.StorageError("Failed to close cart", err)
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Order %d placed by user ID: %d, amount %.2f", order.ID, user.ID, order.Amount)
	utils.Created(c, "Order placed successfully", order)
}

// GetOrder returns one of the user's orders.
func GetOrder(c *gin.Context) {
	utils.LogInfo("GetOrder called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID")
		return
	}

	repo := repository.New[models.Order](config.DB)
	filter := repository.Filter{"id": id}
	if !user.IsAdmin() {
		filter["user_id"] = user.ID
	}

	order, err := repo.FindOne(filter, "Items.Product", "Address", "Storefront")
	if err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", order)
}

// ListOrders returns the user's orders; admins see their storefront's
// orders instead.
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	filter := repository.Filter{}
	if user.IsAdmin() {
		storefrontID, ok := middleware.CurrentStorefrontID(c)
		if !ok {
			utils.BadRequest(c, "No storefront selected")
			return
		}
		filter["storefront_id"] = storefrontID
	} else {
		filter["user_id"] = user.ID
	}
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.BadRequest(c, "Unknown order status")
			return
		}
		filter["status"] = status
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Order](config.DB)
	page, err := repo.Paginate(filter, repository.PageOptions{
		Page:     params.Page,
		Limit:    params.Limit,
		Sort:     params.SortClause("amount", "status", "created_at"),
		Preloads: []string{"Items.Product", "Address"},
	})
	if err != nil {
		utils.LogError("Failed to list orders: %v", err)
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", gin.H{"orders": page.Data}, page.Meta)
}

// UpdateOrderStatusRequest represents the admin status transition payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves a storefront's order through its lifecycle.
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		utils.BadRequest(c, "Unknown order status")
		return
	}

	repo := repository.New[models.Order](config.DB)
	order, err := repo.FindOne(repository.Filter{"id": id, "storefront_id": storefrontID})
	if err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status == models.OrderStatusDelivered || order.Status == models.OrderStatusCancelled {
		utils.Conflict(c, "Order is already "+order.Status)
		return
	}

	if err := repo.Updates(order.ID, map[string]interface{}{"status": req.Status}); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Order %d moved to status %s", order.ID, req.Status)
	utils.Success(c, "Order status updated successfully", gin.H{"status": req.Status})
}

// CancelOrder lets a customer cancel an order that has not shipped yet,
// restoring the reserved stock.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").Where("id = ? AND user_id = ?", id, user.ID).First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("Order not found")
			}
			return utils.StorageError("Failed to fetch order", err)
		}

		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusProcessing {
			return utils.ConflictError("Order can no longer be cancelled")
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return utils.StorageError("Failed to restore stock", err)
			}
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return utils.StorageError("Failed to cancel order", err)
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Order %d cancelled by user ID: %d", id, user.ID)
	utils.Success(c, "Order cancelled successfully", nil)
}
