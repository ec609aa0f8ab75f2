package routes

import (
	"github.com/gin-gonic/gin"

	"journeatz-api/handlers"
	"journeatz-api/middleware"
	"journeatz-api/models"
)

// SetupRoutes registers the API. Every endpoint beyond health, auth and the
// public kitchen catalogue is gated by JWT plus role checks.
func SetupRoutes(r *gin.Engine, authHandler *handlers.AuthHandler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/health", handlers.Health)

		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.GET("/session", authHandler.Session)

		public.GET("/kitchens", handlers.ListKitchens)
		public.GET("/kitchens/:id", handlers.GetKitchen)
		public.GET("/kitchens/:id/menu", handlers.GetMenu)

		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.POST("/auth/logout", authHandler.Logout)
		auth.GET("/profile", handlers.GetProfile)
		auth.GET("/dashboard", handlers.Dashboard)

		// Orders are role-scoped inside the handlers: listing narrows to
		// the caller, placing requires a customer profile (or admin), and
		// patches run through the state machine.
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrderDetail)
		auth.POST("/orders", middleware.RoleRequired(models.RoleCustomer, models.RoleAdmin), handlers.PlaceOrder)
		auth.PATCH("/orders/:id", handlers.PatchOrder)
	}

	// ── Kitchen owner routes ───────────────────────────────────────
	kitchen := r.Group("/api/kitchens/me")
	kitchen.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleKitchen))
	{
		kitchen.GET("", handlers.GetMyKitchen)
		kitchen.PATCH("", handlers.UpdateMyKitchen)
		kitchen.POST("/menu", handlers.AddMenuItem)
		kitchen.PATCH("/menu/:itemId", handlers.UpdateMenuItem)
		kitchen.DELETE("/menu/:itemId", handlers.DeleteMenuItem)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/drivers/me")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("", handlers.GetMyDriver)
		driver.PATCH("", handlers.UpdateMyDriver)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/users/:id", handlers.AdminGetUser)
		admin.GET("/drivers", handlers.AdminGetAllDrivers)
		admin.GET("/customers", handlers.AdminGetAllCustomers)
	}
}
