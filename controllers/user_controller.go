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

// GetProfile returns the authenticated user's profile.
func GetProfile(c *gin.Context) {
	utils.LogInfo("GetProfile called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	repo := repository.New[models.User](config.DB)
	loaded, err := repo.FindByID(user.ID, "Addresses", "Role.Permissions")
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.Success(c, "Profile retrieved successfully", loaded)
}

// UpdateProfileRequest represents the mutable profile fields.
type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Avatar *string `json:"avatar"`
}

// UpdateProfile updates the authenticated user's own details.
func UpdateProfile(c *gin.Context) {
	utils.LogInfo("UpdateProfile called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	values := map[string]interface{}{}
	if req.Name != nil {
		values["name"] = utils.SanitizeString(*req.Name)
	}
	if req.Phone != nil {
		if !utils.ValidatePhone(*req.Phone) {
			utils.ValidationError(c, "Please provide a valid phone number")
			return
		}
		values["phone"] = *req.Phone
	}
	if req.Avatar != nil {
		values["avatar"] = *req.Avatar
	}
	if len(values) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	repo := repository.New[models.User](config.DB)
	if err := repo.Updates(user.ID, values); err != nil {
		utils.SendAppError(c, err)
		return
	}

	updated, err := repo.FindByID(user.ID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Profile updated for user ID: %d", user.ID)
	utils.Success(c, "Profile updated successfully", updated)
}

// ListUsers returns all users for admins, with search over name and email.
func ListUsers(c *gin.Context) {
	utils.LogInfo("ListUsers called")

	params := utils.GetPageParams(c)
	repo := repository.New[models.User](config.DB)
	page, err := repo.Paginate(nil, repository.PageOptions{
		Page:         params.Page,
		Limit:        params.Limit,
		Sort:         params.SortClause("name", "email", "created_at", "last_login_at"),
		Search:       params.Search,
		SearchFields: []string{"name", "email"},
		Preloads:     []string{"Role"},
	})
	if err != nil {
		utils.LogError("Failed to list users: %v", err)
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Users retrieved successfully", gin.H{"users": page.Data}, page.Meta)
}

// SetUserBlocked blocks or unblocks a user account.
func SetUserBlocked(c *gin.Context, blocked bool) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	repo := repository.New[models.User](config.DB)
	if err := repo.Updates(uint(userID), map[string]interface{}{"is_blocked": blocked}); err != nil {
		utils.SendAppError(c, err)
		return
	}

	action := "unblocked"
	if blocked {
		action = "blocked"
	}
	utils.LogInfo("User %d %s", userID, action)
	utils.Success(c, "User "+action+" successfully", nil)
}

// BlockUser blocks a user account.
func BlockUser(c *gin.Context) {
	utils.LogInfo("BlockUser called")
	SetUserBlocked(c, true)
}

// UnblockUser unblocks a user account.
func UnblockUser(c *gin.Context) {
	utils.LogInfo("UnblockUser called")
	SetUserBlocked(c, false)
}

// AssignRoleRequest represents the request body for assigning a role.
type AssignRoleRequest struct {
	RoleID uint `json:"role_id" binding:"required"`
}

// AssignRole attaches a role (and its permission set) to a user.
func AssignRole(c *gin.Context) {
	utils.LogInfo("AssignRole called")

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	roleRepo := repository.New[models.Role](config.DB)
	role, err := roleRepo.FindByID(req.RoleID)
	if err != nil {
		utils.NotFound(c, "Role not found")
		return
	}

	userRepo := repository.New[models.User](config.DB)
	if err := userRepo.Updates(uint(userID), map[string]interface{}{"role_id": role.ID}); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Role %q assigned to user %d", role.Name, userID)
	utils.Success(c, "Role assigned successfully", nil)
}
