package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
)

// CreateSupportRequest represents the request body for opening a support
// ticket.
type CreateSupportRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required"`
	Subject     string   `json:"subject" binding:"required"`
	RequestType string   `json:"request_type" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Attachments []string `json:"attachments"`
}

// CreateSupport opens a support ticket and emails an acknowledgement to
// the requester.
func CreateSupport(c *gin.Context) {
	utils.LogInfo("CreateSupport called")

	var req CreateSupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if !utils.ValidateEmail(req.Email) {
		utils.ValidationError(c, "Invalid email address")
		return
	}
	if !models.ValidSupportType(req.RequestType) {
		utils.ValidationError(c, "Unknown request type")
		return
	}

	ticket := models.Support{
		Name:        utils.SanitizeString(req.Name),
		Email:       req.Email,
		Subject:     utils.SanitizeString(req.Subject),
		RequestType: req.RequestType,
		Description: utils.SanitizeString(req.Description),
		Attachments: req.Attachments,
	}

	repo := repository.New[models.Support](config.DB)
	if err := repo.Create(&ticket); err != nil {
		utils.LogError("Failed to create support ticket: %v", err)
		utils.SendAppError(c, err)
		return
	}

	// The acknowledgement email is best-effort; the ticket stands either way.
	if err := utils.SendSupportAcknowledgement(ticket.Email, ticket.Subject, ticket.ID); err != nil {
		utils.LogError("Failed to send support acknowledgement to %s: %v", ticket.Email, err)
	}

	utils.LogInfo("Support ticket %d opened by %s", ticket.ID, ticket.Email)
	utils.Created(c, "Support request submitted successfully", ticket)
}

// GetSupport returns one support ticket.
func GetSupport(c *gin.Context) {
	utils.LogInfo("GetSupport called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid support ticket ID")
		return
	}

	repo := repository.New[models.Support](config.DB)
	ticket, err := repo.FindByID(uint(id))
	if err != nil {
		utils.NotFound(c, "Support ticket not found")
		return
	}

	utils.Success(c, "Support ticket retrieved successfully", ticket)
}

// ListSupport returns support tickets, filterable by type and state.
func ListSupport(c *gin.Context) {
	utils.LogInfo("ListSupport called")

	filter := repository.Filter{}
	if t := c.Query("request_type"); t != "" {
		if !models.ValidSupportType(t) {
			utils.BadRequest(c, "Unknown request type")
			return
		}
		filter["request_type"] = t
	}
	if resolved := c.Query("resolved"); resolved != "" {
		filter["resolved"] = resolved == "true"
	}

	params := utils.GetPageParams(c)
	repo := repository.New[models.Support](config.DB)
	page, err := repo.Paginate(filter, repository.PageOptions{
		Page:         params.Page,
		Limit:        params.Limit,
		Sort:         params.SortClause("subject", "request_type", "created_at"),
		Search:       params.Search,
		SearchFields: []string{"subject", "email", "description"},
	})
	if err != nil {
		utils.LogError("Failed to list support tickets: %v", err)
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Support tickets retrieved successfully", gin.H{"tickets": page.Data}, page.Meta)
}

// ResolveSupport marks a ticket resolved.
func ResolveSupport(c *gin.Context) {
	utils.LogInfo("ResolveSupport called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid support ticket ID")
		return
	}

	repo := repository.New[models.Support](config.DB)
	ticket, err := repo.FindByID(uint(id))
	if err != nil {
		utils.NotFound(c, "Support ticket not found")
		return
	}
	if ticket.Resolved {
		utils.Conflict(c, "Ticket is already resolved")
		return
	}

	if err := repo.Updates(ticket.ID, map[string]interface{}{"resolved": true}); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Support ticket %d resolved", ticket.ID)
	utils.Success(c, "Support ticket resolved successfully", nil)
}

// DeleteSupport soft-deletes a ticket.
func DeleteSupport(c *gin.Context) {
	utils.LogInfo("DeleteSupport called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid support ticket ID")
		return
	}

	repo := repository.New[models.Support](config.DB)
	if _, err := repo.FindByID(uint(id)); err != nil {
		utils.NotFound(c, "Support ticket not found")
		return
	}
	if err := repo.Delete(uint(id)); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Support ticket %d deleted", id)
	utils.Success(c, "Support ticket deleted successfully", nil)
}
