package http

import (
	"beadshop/config"
	"beadshop/internal/service"

	"github.com/gin-contrib/cors"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

func Router(cfg *config.Config, catalog service.CatalogService, carts service.CartService, orders service.OrderService, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	storefront := NewStorefrontHandler(catalog, carts, log)
	r.GET("/", storefront.MainPage)
	r.GET("/catalog/:slug", storefront.CategoryPage)
	r.GET("/product/:slug", storefront.ProductPage)
	r.GET("/cart", storefront.CartPage)

	cart := NewCartHandler(carts, orders, log)
	r.POST("/cart/add-item", cart.AddItem)
	r.POST("/cart/remove-item", cart.RemoveItem)
	r.POST("/cart/make-order", cart.MakeOrder)

	adm := NewAdminHandler(catalog, orders, log)
	admin := r.Group("/admin", RequireAPIKey(cfg.AdminAPIKey))
	{
		admin.GET("/orders", adm.ListOrders)
		admin.GET("/orders/:id", adm.GetOrder)
		admin.POST("/orders/reserve", adm.BulkReserve)
		admin.POST("/orders/progress", adm.BulkProgress)
		admin.POST("/orders/cancel", adm.BulkCancel)
		admin.POST("/orders/complete", adm.BulkComplete)
		admin.PATCH("/orders/:id/memo", adm.UpdateOrderMemo)

		admin.POST("/products", adm.CreateProduct)
		admin.PATCH("/products/:id", adm.UpdateProduct)
		admin.DELETE("/products/:id", adm.DeleteProduct)

		admin.POST("/categories", adm.CreateCategory)
		admin.PATCH("/categories/:id", adm.UpdateCategory)
		admin.DELETE("/categories/:id", adm.DeleteCategory)
	}

	return r
}
