package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/middleware"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/utils"
)

// InitiateCardPayment creates a Razorpay order for a pending card order and
// hands the gateway references back to the client.
func InitiateCardPayment(c *gin.Context) {
	utils.LogInfo("InitiateCardPayment called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid payment request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. order_id is required")
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for ID: %d, user ID: %d", req.OrderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentMethod != models.PaymentMethodCard {
		utils.BadRequest(c, "Order is not a card payment order")
		return
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		utils.Conflict(c, "Payment for this order has already been completed")
		return
	}

	// The gateway expects the amount in the currency's minor unit.
	amountMinor := int(order.Amount * 100)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        "INR",
		"receipt":         "order_rcptid_" + strconv.FormatUint(uint64(order.ID), 10),
		"payment_capture": 1,
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create gateway order for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to create payment order")
		return
	}

	gatewayRef := fmt.Sprintf("%v", rzOrder["id"])
	if err := config.DB.Model(&order).Update("payment_order_ref", gatewayRef).Error; err != nil {
		utils.LogError("Failed to store gateway reference for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order details")
		return
	}

	utils.LogInfo("Payment initiated for order ID: %d, gateway ref: %s", order.ID, gatewayRef)
	utils.Success(c, "Payment initiated successfully", gin.H{
		"order": gin.H{
			"id":                order.ID,
			"payment_order_ref": gatewayRef,
			"amount":            fmt.Sprintf("%.2f", order.Amount),
		},
		"key": os.Getenv("RAZORPAY_KEY"),
		"user": gin.H{
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// VerifyCardPayment checks the gateway signature and marks the order paid.
func VerifyCardPayment(c *gin.Context) {
	utils.LogInfo("VerifyCardPayment called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		OrderID           uint   `json:"order_id" binding:"required"`
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verification request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request")
		return
	}

	keySecret := os.Getenv("RAZORPAY_SECRET")
	data := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(data))
	generatedSignature := hex.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(generatedSignature), []byte(req.RazorpaySignature)) {
		utils.LogError("Payment verification failed for order ID: %d, user ID: %d", req.OrderID, user.ID)
		utils.BadRequest(c, "Payment verification failed")
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for ID: %d, user ID: %d: %v", req.OrderID, user.ID, err)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentOrderRef != req.RazorpayOrderID {
		utils.LogError("Gateway order ID mismatch for order ID: %d. Expected: %s, Received: %s",
			req.OrderID, order.PaymentOrderRef, req.RazorpayOrderID)
		utils.BadRequest(c, "Invalid payment order reference")
		return
	}

	if err := config.DB.Model(&order).Updates(map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"status":         models.OrderStatusProcessing,
	}).Error; err != nil {
		utils.LogError("Failed to update order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order")
		return
	}

	utils.LogInfo("Payment verified for order ID: %d", order.ID)
	utils.Success(c, "Thank you for your payment! Your order has been placed.", gin.H{
		"order_id":       order.ID,
		"amount":         fmt.Sprintf("%.2f", order.Amount),
		"payment_method": order.PaymentMethod,
		"status":         models.OrderStatusProcessing,
	})
}
