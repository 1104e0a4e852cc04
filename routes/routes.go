package routes

import (
	"resto-qr-pos/handlers"
	"resto-qr-pos/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, api *handlers.API) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Staff auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Ordering surface (no auth: customers come in via table QR)
		public.GET("/menu", handlers.GetMenu)
		public.GET("/promotions", handlers.GetPromotions)
		public.GET("/tables/:id", handlers.GetTable)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)

		// Payment provider webhook
		public.POST("/payment/callback", api.PaymentCallback)
	}

	// ── Session cart + checkout (keyed by X-Session-ID) ────────────
	cartGroup := r.Group("/api/cart")
	{
		cartGroup.GET("", api.GetCart)
		cartGroup.POST("/items", api.AddCartItem)
		cartGroup.PATCH("/items/:lineId", api.UpdateCartItem)
		cartGroup.DELETE("/items/:lineId", api.RemoveCartItem)
		cartGroup.DELETE("", api.ClearCart)
		cartGroup.PUT("/table", api.SetCartTable)
	}
	r.POST("/api/checkout", api.Checkout)
	r.POST("/api/payment/session", api.CreatePaymentSession)

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Cashier routes ─────────────────────────────────────────────
	cashier := r.Group("/api/cashier")
	cashier.Use(middleware.AuthRequired(), middleware.RequireCapability(func(caps middleware.Capabilities) bool {
		return caps.AdvanceOrders
	}))
	{
		cashier.GET("/orders", api.GetOrderQueue)
		cashier.POST("/orders", api.CreateWalkInOrder)
		cashier.PUT("/orders/:id/advance", api.AdvanceOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireCapability(func(caps middleware.Capabilities) bool {
		return caps.ManageMenu
	}))
	{
		// Menu management
		admin.GET("/menu", handlers.AdminListMenu)
		admin.POST("/menu", handlers.AddMenuItem)
		admin.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		admin.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		// Promotions
		admin.GET("/promotions", handlers.AdminListPromotions)
		admin.POST("/promotions", handlers.AddPromotion)
		admin.PUT("/promotions/:promoId", handlers.UpdatePromotion)
		admin.DELETE("/promotions/:promoId", handlers.DeletePromotion)

		// Tables and their QR codes
		admin.GET("/tables", handlers.AdminListTables)
		admin.POST("/tables", handlers.AddTable)
		admin.DELETE("/tables/:tableId", handlers.DeleteTable)
		admin.GET("/tables/:tableId/qr", api.GetTableQR)

		// Orders, users, reports, images
		admin.GET("/orders", handlers.AdminListOrders)
		admin.PUT("/orders/:id/status", api.AdminForceOrderStatus)
		admin.GET("/users", handlers.AdminListUsers)
		admin.PUT("/users/:userId/role", handlers.AdminSetUserRole)
		admin.GET("/reports/orders.csv", handlers.OrdersReportCSV)
		admin.POST("/upload", handlers.UploadImage)
	}
}
