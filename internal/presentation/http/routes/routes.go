package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devstore/sales-api/internal/config"
	domainRepo "github.com/devstore/sales-api/internal/domain/repository"
	"github.com/devstore/sales-api/internal/presentation/http/handler"
	"github.com/devstore/sales-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Sale         *handler.SaleHandler
	DiscountRule *handler.DiscountRuleHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		if deps.IdempotencyRepo != nil {
			v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		}

		registerSaleRoutes(v1, h)
		registerDiscountRuleRoutes(v1, h)
		registerProductRoutes(v1, h)
		registerCartRoutes(v1, h)
	}

	return router
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Delete)
		sales.POST("/:id/cancel", h.Sale.Cancel)

		sales.POST("/:id/items", h.Sale.AddItem)
		sales.PUT("/:id/items/:itemId", h.Sale.UpdateItem)
		sales.DELETE("/:id/items/:itemId", h.Sale.RemoveItem)
		sales.POST("/:id/items/:itemId/cancel", h.Sale.CancelItem)
	}
}

func registerDiscountRuleRoutes(v1 *gin.RouterGroup, h *Handlers) {
	rules := v1.Group("/discount-rules")
	{
		rules.GET("", h.DiscountRule.List)
		rules.POST("", h.DiscountRule.Create)
		rules.GET("/:id", h.DiscountRule.Get)
		rules.PUT("/:id", h.DiscountRule.Update)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/categories", h.Product.ListCategories)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCartRoutes(v1 *gin.RouterGroup, h *Handlers) {
	carts := v1.Group("/carts")
	{
		carts.GET("", h.Cart.List)
		carts.POST("", h.Cart.Create)
		carts.GET("/:id", h.Cart.Get)
		carts.PUT("/:id", h.Cart.Update)
		carts.DELETE("/:id", h.Cart.Delete)
	}
}
