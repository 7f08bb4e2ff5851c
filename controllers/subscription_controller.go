package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/middleware"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
	"gorm.io/gorm"
)

// SubscribeRequest represents the request body for subscribing to a plan
type SubscribeRequest struct {
	PlanID    uint `json:"plan_id" binding:"required"`
	AutoRenew bool `json:"auto_renew"`
}

// Subscribe puts the current user on a plan for one billing term. A user
// may hold only one active subscription, so the existence check and the
// insert run in one transaction.
func Subscribe(c *gin.Context) {
	utils.LogInfo("Subscribe called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid subscribe request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. plan_id is required")
		return
	}

	var subscription models.Subscription
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		planRepo := repository.New[models.Plan](config.DB).WithTx(tx)
		plan, err := planRepo.FindByID(req.PlanID)
		if err != nil {
			if utils.IsNotFoundError(err) {
				return utils.NotFoundError("Subscription plan not found or inactive")
			}
			return err
		}
		if !plan.IsActive {
			return utils.NotFoundError("Subscription plan not found or inactive")
		}

		var active models.Subscription
		err = tx.Where("user_id = ? AND status = ?", user.ID, models.SubscriptionActive).
			First(&active).Error
		if err == nil {
			return utils.ConflictError("User already has an active subscription")
		}
		if err != gorm.ErrRecordNotFound {
			return utils.StorageError("Failed to check existing subscription", err)
		}

		now := time.Now()
		subscription = models.Subscription{
			UserID:    user.ID,
			PlanID:    plan.ID,
			StartDate: now,
			EndDate:   models.SubscriptionTermEnd(now, plan.BillingCycle),
			Status:    models.SubscriptionActive,
			AutoRenew: req.AutoRenew,
		}
		if err := tx.Create(&subscription).Error; err != nil {
			return utils.StorageError("Failed to create subscription", err)
		}
		subscription.Plan = *plan
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("User %d subscribed to plan %d until %s", user.ID, subscription.PlanID,
		subscription.EndDate.Format("2006-01-02"))
	utils.Created(c, "Subscribed successfully", gin.H{"subscription": subscription})
}

// GetMySubscription returns the current user's active subscription, or a
// null subscription when none exists.
func GetMySubscription(c *gin.Context) {
	utils.LogInfo("GetMySubscription called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	repo := repository.New[models.Subscription](config.DB)
	subscription, err := repo.FindOne(repository.Filter{
		"user_id": user.ID,
		"status":  models.SubscriptionActive,
	}, "Plan")
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.Success(c, "No active subscription", gin.H{"subscription": nil})
			return
		}
		utils.SendAppError(c, err)
		return
	}

	utils.Success(c, "Subscription retrieved successfully", gin.H{"subscription": subscription})
}

// CancelSubscription cancels the current user's active subscription. The
// conditional update means a concurrent cancel cannot succeed twice.
func CancelSubscription(c *gin.Context) {
	utils.LogInfo("CancelSubscription called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	result := config.DB.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ?", user.ID, models.SubscriptionActive).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionCancelled,
			"auto_renew": false,
		})
	if result.Error != nil {
		utils.LogError("Failed to cancel subscription for user ID: %d: %v", user.ID, result.Error)
		utils.SendAppError(c, utils.StorageError("Failed to cancel subscription", result.Error))
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "No active subscription found")
		return
	}

	utils.LogInfo("Subscription cancelled for user ID: %d", user.ID)
	utils.Success(c, "Subscription cancelled successfully", nil)
}
