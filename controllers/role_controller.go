package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
	"gorm.io/gorm"
)

var knownModules = map[string]bool{
	models.ModuleUsers:      true,
	models.ModuleStorefront: true,
	models.ModuleCategory:   true,
	models.ModuleProduct:    true,
	models.ModuleCart:       true,
	models.ModulePromotion:  true,
	models.ModuleDiscount:   true,
	models.ModuleOrder:      true,
	models.ModulePlan:       true,
	models.ModuleAddress:    true,
	models.ModuleBank:       true,
	models.ModuleSupport:    true,
}

// normalizeOperations upper-cases and de-duplicates an operations string,
// rejecting letters outside CRUD.
func normalizeOperations(ops string) (string, bool) {
	ops = strings.ToUpper(ops)
	var out strings.Builder
	for _, letter := range []string{models.OpCreate, models.OpRead, models.OpUpdate, models.OpDelete} {
		if strings.Contains(ops, letter) {
			out.WriteString(letter)
			ops = strings.ReplaceAll(ops, letter, "")
		}
	}
	return out.String(), strings.TrimSpace(ops) == "" && out.Len() > 0
}

// PermissionInput is one module grant in a role payload.
type PermissionInput struct {
	Module     string `json:"module" binding:"required"`
	Operations string `json:"operations" binding:"required"`
}

// RoleRequest represents the request body for creating or updating a role.
type RoleRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Permissions []PermissionInput `json:"permissions" binding:"required"`
}

func buildPermissions(inputs []PermissionInput) ([]models.Permission, error) {
	perms := make([]models.Permission, 0, len(inputs))
	for _, in := range inputs {
		if !knownModules[in.Module] {
			return nil, utils.InvalidArgumentError("Unknown module: " + in.Module)
		}
		ops, valid := normalizeOperations(in.Operations)
		if !valid {
			return nil, utils.InvalidArgumentError("Operations for " + in.Module + " must be a combination of C, R, U, D")
		}
		perms = append(perms, models.Permission{Module: in.Module, Operations: ops})
	}
	return perms, nil
}

// CreateRole creates a role with its permission grants.
func CreateRole(c *gin.Context) {
	utils.LogInfo("CreateRole called")

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	perms, err := buildPermissions(req.Permissions)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	repo := repository.New[models.Role](config.DB)
	if _, err := repo.FindOne(repository.Filter{"name": req.Name}); err == nil {
		utils.Conflict(c, "A role with this name already exists")
		return
	}

	role := models.Role{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		Permissions: perms,
	}
	if err := repo.Create(&role); err != nil {
		utils.LogError("Failed to create role: %v", err)
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Role %d created: %s", role.ID, role.Name)
	utils.Created(c, "Role created successfully", role)
}

// GetRole returns one role with its permissions.
func GetRole(c *gin.Context) {
	utils.LogInfo("GetRole called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid role ID")
		return
	}

	repo := repository.New[models.Role](config.DB)
	role, err := repo.FindByID(uint(id), "Permissions")
	if err != nil {
		utils.NotFound(c, "Role not found")
		return
	}

	utils.Success(c, "Role retrieved successfully", role)
}

// ListRoles returns all roles with their permissions.
func ListRoles(c *gin.Context) {
	utils.LogInfo("ListRoles called")

	params := utils.GetPageParams(c)
	repo := repository.New[models.Role](config.DB)
	page, err := repo.Paginate(repository.Filter{}, repository.PageOptions{
		Page:         params.Page,
		Limit:        params.Limit,
		Sort:         params.SortClause("name", "created_at"),
		Preloads:     []string{"Permissions"},
		Search:       params.Search,
		SearchFields: []string{"name", "description"},
	})
	if err != nil {
		utils.LogError("Failed to list roles: %v", err)
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Roles retrieved successfully", gin.H{"roles": page.Data}, page.Meta)
}

// RoleDropdown returns roles as value/label pairs for select inputs.
func RoleDropdown(c *gin.Context) {
	utils.LogInfo("RoleDropdown called")

	params := utils.GetPageParams(c)
	repo := repository.New[models.Role](config.DB)
	page, err := repo.Dropdown(repository.Filter{}, c.DefaultQuery("select", "name"), repository.PageOptions{
		Page:         params.Page,
		Limit:        params.Limit,
		Search:       params.Search,
		SearchFields: []string{"name"},
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Roles retrieved successfully", gin.H{"options": page.Data}, page.Meta)
}

// UpdateRole replaces a role's name, description, and permission set.
func UpdateRole(c *gin.Context) {
	utils.LogInfo("UpdateRole called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid role ID")
		return
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	perms, err := buildPermissions(req.Permissions)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("Role not found")
			}
			return utils.StorageError("Failed to fetch role", err)
		}

		if req.Name != role.Name {
			var existing models.Role
			if err := tx.Where("name = ? AND id <> ?", req.Name, role.ID).First(&existing).Error; err == nil {
				return utils.ConflictError("A role with this name already exists")
			}
		}

		if err := tx.Model(&role).Updates(map[string]interface{}{
			"name":        utils.SanitizeString(req.Name),
			"description": utils.SanitizeString(req.Description),
		}).Error; err != nil {
			return utils.StorageError("Failed to update role", err)
		}

		if err := tx.Where("role_id = ?", role.ID).Delete(&models.Permission{}).Error; err != nil {
			return utils.StorageError("Failed to clear role permissions", err)
		}
		for i := range perms {
			perms[i].RoleID = role.ID
		}
		if len(perms) > 0 {
			if err := tx.Create(&perms).Error; err != nil {
				return utils.StorageError("Failed to save role permissions", err)
			}
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Role %d updated", id)
	utils.Success(c, "Role updated successfully", nil)
}

// DeleteRole removes a role, refusing while users still hold it.
func DeleteRole(c *gin.Context) {
	utils.LogInfo("DeleteRole called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid role ID")
		return
	}

	repo := repository.New[models.Role](config.DB)
	role, err := repo.FindByID(uint(id))
	if err != nil {
		utils.NotFound(c, "Role not found")
		return
	}

	var holders int64
	if err := config.DB.Model(&models.User{}).Where("role_id = ?", role.ID).Count(&holders).Error; err != nil {
		utils.InternalServerError(c, "Failed to check role usage")
		return
	}
	if holders > 0 {
		utils.Conflict(c, "Role is still assigned to users")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.Permission{}).Error; err != nil {
			return utils.StorageError("Failed to delete role permissions", err)
		}
		if err := tx.Delete(role).Error; err != nil {
			return utils.StorageError("Failed to delete role", err)
		}
		return nil
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Role %d deleted", id)
	utils.Success(c, "Role deleted successfully", nil)
}
