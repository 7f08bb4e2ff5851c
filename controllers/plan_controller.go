package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
	"gorm.io/gorm"
)

// CreatePlanRequest represents the request body for creating a
// subscription plan.
type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	PriceAmount  float64 `json:"price_amount"`
	Currency     string  `json:"currency"`
	BillingCycle string  `json:"billing_cycle" binding:"required"`
	Features     []struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Enabled     *bool  `json:"enabled"`
	} `json:"features"`
}

// CreatePlan creates a subscription plan with its feature list.
func CreatePlan(c *gin.Context) {
	utils.LogInfo("CreatePlan called")

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if req.PriceAmount < 0 {
		utils.ValidationError(c, "Price amount cannot be negative")
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	if !models.ValidCurrency(req.Currency) {
		utils.ValidationError(c, "Unsupported currency")
		return
	}
	if !models.ValidBillingCycle(req.BillingCycle) {
		utils.ValidationError(c, "Billing cycle must be monthly or yearly")
		return
	}

	repo := repository.New[models.Plan](config.DB)
	if _, err := repo.FindOne(repository.Filter{"name": req.Name}); err == nil {
		utils.Conflict(c, "A plan with this name already exists")
		return
	}

	plan := models.Plan{
		Name:         req.Name,
		Description:  req.Description,
		PriceAmount:  req.PriceAmount,
		Currency:     req.Currency,
		BillingCycle: req.BillingCycle,
		IsActive:     true,
	}
	for _, f := range req.Features {
		enabled := true
		if f.Enabled != nil {
			enabled = *f.Enabled
		}
		plan.Features = append(plan.Features, models.PlanFeature{
			Name:        f.Name,
			Description: f.Description,
			Enabled:     enabled,
		})
	}

	if err := repo.Create(&plan); err != nil {
		utils.LogError("Failed to create plan: %v", err)
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Plan %d created: %s", plan.ID, plan.Name)
	utils.Created(c, "Plan created successfully", plan)
}

// GetPlan returns one plan with its features.
func GetPlan(c *gin.Context) {
	utils.LogInfo("GetPlan called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid plan ID")
		return
	}

	repo := repository.New[models.Plan](config.DB)
	plan, err := repo.FindByID(uint(id), "Features")
	if err != nil {
		utils.NotFound(c, "Plan not found")
		return
	}

	utils.Success(c, "Plan retrieved successfully", plan)
}

// ListPlans returns the plan catalog. Customers only see active plans.
func ListPlans(c *gin.Context) {
	utils.LogInfo("ListPlans called")

	filter := repository.Filter{}
	if c.Query("include_inactive") != "true" {
		filter["is_active"] = true
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Plan](config.DB)
	page, err := repo.Paginate(filter, repository.PageOptions{
		Page:         params.Page,
		Limit:        params.Limit,
		Sort:         params.SortClause("name", "price_amount", "created_at"),
		Preloads:     []string{"Features"},
		Search:       params.Search,
		SearchFields: []string{"name", "description"},
	})
	if err != nil {
		utils.LogError("Failed to list plans: %v", err)
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Plans retrieved successfully", gin.H{"plans": page.Data}, page.Meta)
}

// PlanDropdown returns plans as value/label pairs for select inputs.
func PlanDropdown(c *gin.Context) {
	utils.LogInfo("PlanDropdown called")

	params := utils.GetPageParams(c)
	repo := repository.New[models.Plan](config.DB)
	page, err := repo.Dropdown(repository.Filter{"is_active": true}, c.DefaultQuery("select", "name"), repository.PageOptions{
		Page:         params.Page,
		Limit:        params.Limit,
		Search:       params.Search,
		SearchFields: []string{"name"},
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Plans retrieved successfully", gin.H{"options": page.Data}, page.Meta)
}

// UpdatePlanRequest carries the partial update payload for a plan.
type UpdatePlanRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	PriceAmount  *float64 `json:"price_amount"`
	Currency     *string  `json:"currency"`
	BillingCycle *string  `json:"billing_cycle"`
	IsActive     *bool    `json:"is_active"`
}

// UpdatePlan applies a partial update to a plan.
func UpdatePlan(c *gin.Context) {
	utils.LogInfo("UpdatePlan called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid plan ID")
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	repo := repository.New[models.Plan](config.DB)
	plan, err := repo.FindByID(uint(id))
	if err != nil {
		utils.NotFound(c, "Plan not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != plan.Name {
		if _, err := repo.FindOne(repository.Filter{"name": *req.Name}); err == nil {
			utils.Conflict(c, "A plan with this name already exists")
			return
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PriceAmount != nil {
		if *req.PriceAmount < 0 {
			utils.ValidationError(c, "Price amount cannot be negative")
			return
		}
		updates["price_amount"] = *req.PriceAmount
	}
	if req.Currency != nil {
		if !models.ValidCurrency(*req.Currency) {
			utils.ValidationError(c, "Unsupported currency")
			return
		}
		updates["currency"] = *req.Currency
	}
	if req.BillingCycle != nil {
		if !models.ValidBillingCycle(*req.BillingCycle) {
			utils.ValidationError(c, "Billing cycle must be monthly or yearly")
			return
		}
		updates["billing_cycle"] = *req.BillingCycle
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := repo.Updates(plan.ID, updates); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Plan %d updated", plan.ID)
	utils.Success(c, "Plan updated successfully", nil)
}

// DeletePlan soft-deletes a plan and removes its features.
func DeletePlan(c *gin.Context) {
	utils.LogInfo("DeletePlan called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid plan ID")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var plan models.Plan
		if err := tx.First(&plan, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("Plan not found")
			}
			return utils.StorageError("Failed to fetch plan", err)
		}
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&models.PlanFeature{}).Error; err != nil {
			return utils.StorageError("Failed to delete plan features", err)
		}
		if err := tx.Delete(&plan).Error; err != nil {
			return utils.StorageError("Failed to delete plan", err)
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Plan %d deleted", id)
	utils.Success(c, "Plan deleted successfully", nil)
}
