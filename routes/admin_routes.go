package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/controllers"
	"github.com/storecart/storecart/middleware"
	"github.com/storecart/storecart/models"
)

// initAdminRoutes initializes all storefront management routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// Tenant context
		admin.POST("/storefronts", middleware.Permission(models.ModuleStorefront, models.OpCreate), controllers.CreateStorefront)
		admin.PUT("/storefronts/:id", middleware.Permission(models.ModuleStorefront, models.OpUpdate), controllers.UpdateStorefront)
		admin.DELETE("/storefronts/:id", middleware.Permission(models.ModuleStorefront, models.OpDelete), controllers.DeleteStorefront)
		admin.POST("/storefronts/:id/select", controllers.SelectStorefront)

		// Catalog
		admin.POST("/categories", middleware.Permission(models.ModuleCategory, models.OpCreate), controllers.CreateCategory)
		admin.GET("/categories", middleware.Permission(models.ModuleCategory, models.OpRead), controllers.ListCategories)
		admin.GET("/categories/dropdown", middleware.Permission(models.ModuleCategory, models.OpRead), controllers.CategoryDropdown)
		admin.PUT("/categories/:id", middleware.Permission(models.ModuleCategory, models.OpUpdate), controllers.UpdateCategory)
		admin.DELETE("/categories/:id", middleware.Permission(models.ModuleCategory, models.OpDelete), controllers.DeleteCategory)

		admin.POST("/products", middleware.Permission(models.ModuleProduct, models.OpCreate), controllers.CreateProduct)
		admin.GET("/products", middleware.Permission(models.ModuleProduct, models.OpRead), controllers.ListProducts)
		admin.GET("/products/dropdown", middleware.Permission(models.ModuleProduct, models.OpRead), controllers.ProductDropdown)
		admin.GET("/products/:id", middleware.Permission(models.ModuleProduct, models.OpRead), controllers.GetProduct)
		admin.PUT("/products/:id", middleware.Permission(models.ModuleProduct, models.OpUpdate), controllers.UpdateProduct)
		admin.DELETE("/products/:id", middleware.Permission(models.ModuleProduct, models.OpDelete), controllers.DeleteProduct)

		// Promotions
		admin.POST("/promo/create", middleware.Permission(models.ModulePromotion, models.OpCreate), controllers.CreatePromo)
		admin.POST("/promos", middleware.Permission(models.ModulePromotion, models.OpCreate), controllers.CreatePromo)
		admin.GET("/promos", middleware.Permission(models.ModulePromotion, models.OpRead), controllers.ListPromos)
		admin.GET("/promos/dropdown", middleware.Permission(models.ModulePromotion, models.OpRead), controllers.PromoDropdown)
		admin.PUT("/promos/:id", middleware.Permission(models.ModulePromotion, models.OpUpdate), controllers.UpdatePromo)
		admin.DELETE("/promos/:id", middleware.Permission(models.ModulePromotion, models.OpDelete), controllers.DeletePromo)

		admin.POST("/discounts", middleware.Permission(models.ModuleDiscount, models.OpCreate), controllers.CreateDiscount)
		admin.GET("/discounts", middleware.Permission(models.ModuleDiscount, models.OpRead), controllers.ListDiscounts)
		admin.GET("/discounts/:id", middleware.Permission(models.ModuleDiscount, models.OpRead), controllers.GetDiscount)
		admin.PUT("/discounts/:id", middleware.Permission(models.ModuleDiscount, models.OpUpdate), controllers.UpdateDiscount)
		admin.DELETE("/discounts/:id", middleware.Permission(models.ModuleDiscount, models.OpDelete), controllers.DeleteDiscount)

		// Orders
		admin.GET("/orders", middleware.Permission(models.ModuleOrder, models.OpRead), controllers.ListOrders)
		admin.GET("/orders/:id", middleware.Permission(models.ModuleOrder, models.OpRead), controllers.GetOrder)
		admin.PUT("/orders/:id/status", middleware.Permission(models.ModuleOrder, models.OpUpdate), controllers.UpdateOrderStatus)

		// Reporting
		admin.GET("/reports/sales", middleware.Permission(models.ModuleOrder, models.OpRead), controllers.GetSalesReport)
		admin.GET("/reports/sales/excel", middleware.Permission(models.ModuleOrder, models.OpRead), controllers.DownloadSalesReportExcel)

		// User administration
		admin.GET("/users", middleware.Permission(models.ModuleUsers, models.OpRead), controllers.ListUsers)
		admin.PUT("/users/:id/block", middleware.Permission(models.ModuleUsers, models.OpUpdate), controllers.BlockUser)
		admin.PUT("/users/:id/unblock", middleware.Permission(models.ModuleUsers, models.OpUpdate), controllers.UnblockUser)
		admin.PUT("/users/:id/role", middleware.Permission(models.ModuleUsers, models.OpUpdate), controllers.AssignRole)

		// Roles
		admin.POST("/roles", middleware.Permission(models.ModuleUsers, models.OpCreate), controllers.CreateRole)
		admin.GET("/roles", middleware.Permission(models.ModuleUsers, models.OpRead), controllers.ListRoles)
		admin.GET("/roles/dropdown", middleware.Permission(models.ModuleUsers, models.OpRead), controllers.RoleDropdown)
		admin.GET("/roles/:id", middleware.Permission(models.ModuleUsers, models.OpRead), controllers.GetRole)
		admin.PUT("/roles/:id", middleware.Permission(models.ModuleUsers, models.OpUpdate), controllers.UpdateRole)
		admin.DELETE("/roles/:id", middleware.Permission(models.ModuleUsers, models.OpDelete), controllers.DeleteRole)

		// Plans
		admin.POST("/plans", middleware.Permission(models.ModulePlan, models.OpCreate), controllers.CreatePlan)
		admin.PUT("/plans/:id", middleware.Permission(models.ModulePlan, models.OpUpdate), controllers.UpdatePlan)
		admin.DELETE("/plans/:id", middleware.Permission(models.ModulePlan, models.OpDelete), controllers.DeletePlan)

		// Support desk
		admin.GET("/support", middleware.Permission(models.ModuleSupport, models.OpRead), controllers.ListSupport)
		admin.GET("/support/:id", middleware.Permission(models.ModuleSupport, models.OpRead), controllers.GetSupport)
		admin.PUT("/support/:id/resolve", middleware.Permission(models.ModuleSupport, models.OpUpdate), controllers.ResolveSupport)
		admin.DELETE("/support/:id", middleware.Permission(models.ModuleSupport, models.OpDelete), controllers.DeleteSupport)
	}
}
