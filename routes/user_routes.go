package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/controllers"
	"github.com/storecart/storecart/middleware"
)

// initUserRoutes initializes all customer-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)
	router.GET("/verify-email", controllers.VerifyEmail)

	// Storefront browsing
	router.GET("/storefronts", controllers.ListStorefronts)
	router.GET("/storefronts/dropdown", controllers.StorefrontDropdown)
	router.GET("/storefronts/:id", controllers.GetStorefront)
	router.GET("/storefronts/:id/products", controllers.BrowseProducts)

	// Plan catalog
	router.GET("/plans", controllers.ListPlans)
	router.GET("/plans/dropdown", controllers.PlanDropdown)
	router.GET("/plans/:id", controllers.GetPlan)

	// Support tickets can be opened without an account
	router.POST("/support", controllers.CreateSupport)

	// Promo application lives at its own path; the cart-scoped route below
	// is an alias for the same handler.
	router.POST("/promo/apply-to-cart/:cartId", middleware.AuthMiddleware(), controllers.ApplyPromoToCart)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Profile
		protected.GET("/profile", controllers.GetProfile)
		protected.PUT("/profile", controllers.UpdateProfile)

		// Cart operations
		protected.POST("/carts", controllers.CreateCart)
		protected.GET("/carts", controllers.ListCarts)
		protected.GET("/carts/:id", controllers.GetCart)
		protected.PUT("/carts/:id", controllers.UpdateCart)
		protected.DELETE("/carts/:id", controllers.DeleteCart)
		protected.POST("/carts/:id/apply-promo", controllers.ApplyPromoToCart)

		// Orders
		protected.POST("/orders", controllers.PlaceOrder)
		protected.GET("/orders", controllers.ListOrders)
		protected.GET("/orders/:id", controllers.GetOrder)
		protected.POST("/orders/:id/cancel", controllers.CancelOrder)
		protected.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		// Payments
		protected.POST("/payments/initiate", controllers.InitiateCardPayment)
		protected.POST("/payments/verify", controllers.VerifyCardPayment)

		// Subscriptions
		protected.POST("/subscribe", controllers.Subscribe)
		protected.GET("/my-subscription", controllers.GetMySubscription)
		protected.PUT("/cancel-subscription", controllers.CancelSubscription)

		// Addresses
		protected.POST("/addresses", controllers.AddAddress)
		protected.GET("/addresses", controllers.ListAddresses)
		protected.PUT("/addresses/:id", controllers.UpdateAddress)
		protected.DELETE("/addresses/:id", controllers.DeleteAddress)

		// Payout accounts
		protected.POST("/banks", controllers.AddBank)
		protected.GET("/banks", controllers.ListBanks)
		protected.PUT("/banks/:id", controllers.UpdateBank)
		protected.DELETE("/banks/:id", controllers.DeleteBank)
	}
}
