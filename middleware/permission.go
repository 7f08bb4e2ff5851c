package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/utils"
)

// Permission gates a route on one CRUD operation against one module.
// SuperAdmins bypass the check; users without a role fall back to their
// type: admins manage their storefront's resources, customers get read
// access plus their own cart/address/support operations.
func Permission(module, op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		if user.Type == models.UserTypeSuperAdmin {
			c.Next()
			return
		}

		if user.Role != nil {
			if user.Role.HasPermission(module, op) {
				c.Next()
				return
			}
			utils.LogError("User %d denied %s on %s by role %q", user.ID, op, module, user.Role.Name)
			c.JSON(http.StatusForbidden, gin.H{"error": "You lack the necessary permissions to access this resource."})
			c.Abort()
			return
		}

		if allowedByType(user.Type, module, op) {
			c.Next()
			return
		}

		utils.LogError("User %d (type %s) denied %s on %s", user.ID, user.Type, op, module)
		c.JSON(http.StatusForbidden, gin.H{"error": "You lack the necessary permissions to access this resource."})
		c.Abort()
	}
}

// allowedByType is the default permission matrix for users without an
// explicit role.
func allowedByType(userType, module, op string) bool {
	if userType == models.UserTypeAdmin {
		return true
	}
	// Customers own their carts, addresses, bank details and support
	// tickets, and can read the catalog and apply promotions.
	switch module {
	case models.ModuleCart, models.ModuleAddress, models.ModuleBank, models.ModuleSupport:
		return true
	case models.ModuleOrder:
		return op == models.OpCreate || op == models.OpRead
	case models.ModulePromotion:
		return op == models.OpRead || op == models.OpUpdate
	case models.ModuleProduct, models.ModuleCategory, models.ModulePlan, models.ModuleStorefront:
		return op == models.OpRead
	}
	return false
}

const storefrontSessionKey = "storefront_id"

// SelectStorefront stores the acting storefront in the cookie session so
// subsequent requests inherit the tenant context.
func SelectStorefront(c *gin.Context, storefrontID uint) {
	session := sessions.Default(c)
	session.Set(storefrontSessionKey, storefrontID)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to persist storefront selection: %v", err)
	}
}

// CurrentStorefrontID resolves the tenant scope for the request: the
// session selection wins, then the user's own storefront binding.
func CurrentStorefrontID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	if val := session.Get(storefrontSessionKey); val != nil {
		if id, ok := val.(uint); ok && id > 0 {
			return id, true
		}
	}

	user, ok := CurrentUser(c)
	if !ok || user.StorefrontID == nil {
		return 0, false
	}
	return *user.StorefrontID, true
}
