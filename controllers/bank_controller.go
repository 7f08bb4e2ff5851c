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

// BankRequest represents the request body for adding or updating a payout
// account.
type BankRequest struct {
	Name          string `json:"name" binding:"required"`
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch" binding:"required"`
	BranchAddress string `json:"branch_address"`
	AccountType   string `json:"account_type"`
	AccountNumber string `json:"account_number" binding:"required"`
	IFSCCode      string `json:"ifsc_code"`
}

func validAccountType(t string) bool {
	switch t {
	case models.BankAccountSavings, models.BankAccountCurrent, models.BankAccountSalary:
		return true
	}
	return false
}

// AddBank registers a payout account for the current user.
func AddBank(c *gin.Context) {
	utils.LogInfo("AddBank called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if req.AccountType == "" {
		req.AccountType = models.BankAccountSavings
	}
	if !validAccountType(req.AccountType) {
		utils.ValidationError(c, "Account type must be Savings, Current, or Salary")
		return
	}

	repo := repository.New[models.Bank](config.DB)
	if _, err := repo.FindOne(repository.Filter{"account_number": req.AccountNumber}); err == nil {
		utils.Conflict(c, "This account number is already registered")
		return
	}

	bank := models.Bank{
		UserID:        user.ID,
		Name:          utils.SanitizeString(req.Name),
		BankName:      utils.SanitizeString(req.BankName),
		Branch:        utils.SanitizeString(req.Branch),
		BranchAddress: utils.SanitizeString(req.BranchAddress),
		AccountType:   req.AccountType,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
	}
	if err := repo.Create(&bank); err != nil {
		utils.LogError("Failed to create bank account: %v", err)
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Bank account %d added for user ID: %d", bank.ID, user.ID)
	utils.Created(c, "Bank account added successfully", bank)
}

// ListBanks returns the current user's payout accounts.
func ListBanks(c *gin.Context) {
	utils.LogInfo("ListBanks called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Bank](config.DB)
	page, err := repo.Paginate(repository.Filter{"user_id": user.ID}, repository.PageOptions{
		Page:  params.Page,
		Limit: params.Limit,
		Sort:  params.SortClause("name", "bank_name", "created_at"),
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Bank accounts retrieved successfully", gin.H{"banks": page.Data}, page.Meta)
}

// UpdateBank edits one of the user's payout accounts.
func UpdateBank(c *gin.Context) {
	utils.LogInfo("UpdateBank called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid bank account ID")
		return
	}

	var req BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if req.AccountType != "" && !validAccountType(req.AccountType) {
		utils.ValidationError(c, "Account type must be Savings, Current, or Salary")
		return
	}

	repo := repository.New[models.Bank](config.DB)
	bank, err := repo.FindOne(repository.Filter{"id": id, "user_id": user.ID})
	if err != nil {
		utils.NotFound(c, "Bank account not found")
		return
	}

	if req.AccountNumber != bank.AccountNumber {
		if _, err := repo.FindOne(repository.Filter{"account_number": req.AccountNumber}); err == nil {
			utils.Conflict(c, "This account number is already registered")
			return
		}
	}

	updates := map[string]interface{}{
		"name":           utils.SanitizeString(req.Name),
		"bank_name":      utils.SanitizeString(req.BankName),
		"branch":         utils.SanitizeString(req.Branch),
		"branch_address": utils.SanitizeString(req.BranchAddress),
		"account_number": req.AccountNumber,
		"ifsc_code":      req.IFSCCode,
	}
	if req.AccountType != "" {
		updates["account_type"] = req.AccountType
	}
	if err := repo.Updates(bank.ID, updates); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Bank account %d updated for user ID: %d", bank.ID, user.ID)
	utils.Success(c, "Bank account updated successfully", nil)
}

// DeleteBank soft-deletes one of the user's payout accounts.
func DeleteBank(c *gin.Context) {
	utils.LogInfo("DeleteBank called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid bank account ID")
		return
	}

	repo := repository.New[models.Bank](config.DB)
	if _, err := repo.FindOne(repository.Filter{"id": id, "user_id": user.ID}); err != nil {
		utils.NotFound(c, "Bank account not found")
		return
	}
	if err := repo.Delete(uint(id)); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Bank account %d deleted for user ID: %d", id, user.ID)
	utils.Success(c, "Bank account deleted successfully", nil)
}
