package handlers

import (
	"net/http"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/middleware"
	cartsvc "github.com/arnelectric/storefront-backend/internal/services/cart"
	ordersvc "github.com/arnelectric/storefront-backend/internal/services/orders"
	returnsvc "github.com/arnelectric/storefront-backend/internal/services/returns"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps bundles everything the route tree needs. Repositories arrive
// already wrapped (caching, backend choice) so handlers stay agnostic.
type Deps struct {
	Users    repository.UserRepository
	Products repository.ProductRepository
	Carts    *cartsvc.Service
	Orders   *ordersvc.Service
	Returns  *returnsvc.Service

	// Watchers are nil when the store backend cannot push changes.
	OrderWatcher  repository.OrderWatcher
	ReturnWatcher repository.ReturnWatcher
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	logrus.Info("Setting up routes...")

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Server is running!",
			"status":  "ok",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "arn-storefront-backend",
		})
	})

	authHandler := NewAuthHandler(deps.Users)
	productHandler := NewProductHandler(deps.Products)
	cartHandler := NewCartHandler(deps.Carts)
	orderHandler := NewOrderHandler(deps.Orders)
	returnHandler := NewReturnHandler(deps.Returns)
	uploadHandler := NewUploadHandler()
	streamHandler := NewStreamHandler(deps.OrderWatcher, deps.ReturnWatcher)

	// Public Routes
	authGroup := router.Group("/api/v1/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	publicProducts := router.Group("/api/v1/public/products")
	{
		publicProducts.GET("", productHandler.ListProducts)
		publicProducts.GET("/categories", productHandler.ListCategories)
		publicProducts.GET("/:id", productHandler.GetProductByID)
	}

	// Protected Routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/me", authHandler.Me)

		carts := protected.Group("/cart")
		{
			carts.GET("", cartHandler.GetCart)
			carts.POST("", cartHandler.AddToCart)
			carts.PUT("/:id", cartHandler.UpdateQuantity)
			carts.DELETE("/:id", cartHandler.RemoveFromCart)
			carts.POST("/checkout", cartHandler.Checkout)
		}

		orders := protected.Group("/orders")
		{
			orders.GET("", orderHandler.GetUserOrders)
			orders.GET("/:id", orderHandler.GetOrderByID)
		}

		returns := protected.Group("/returns")
		{
			returns.POST("", returnHandler.CreateReturn)
			returns.GET("", returnHandler.GetUserReturns)
			returns.GET("/:id", returnHandler.GetReturnByID)
			returns.POST("/:id/cancel", returnHandler.CancelReturn)
		}

		// Admin Routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RoleMiddleware("admin"))
		{
			admin.GET("/stats", orderHandler.GetDashboardStats)
			admin.POST("/upload", uploadHandler.UploadImage)
			admin.GET("/stream", streamHandler.AdminStream)

			adminProducts := admin.Group("/products")
			{
				adminProducts.POST("", productHandler.CreateProduct)
				adminProducts.PUT("/:id", productHandler.UpdateProduct)
				adminProducts.DELETE("/:id", productHandler.DeleteProduct)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", orderHandler.GetAllOrders)
				adminOrders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
				adminOrders.PUT("/:id/payment", orderHandler.MarkPaymentPaid)
			}

			adminReturns := admin.Group("/returns")
			{
				adminReturns.GET("", returnHandler.GetAllReturns)
				adminReturns.POST("/:id/approve", returnHandler.ApproveReturn)
				adminReturns.POST("/:id/reject", returnHandler.RejectReturn)
				adminReturns.POST("/:id/received", returnHandler.MarkReceived)
				adminReturns.POST("/:id/refund", returnHandler.ProcessRefund)
			}
		}
	}
}
