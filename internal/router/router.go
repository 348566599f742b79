// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pricetrail/pricetrail-backend/internal/config"
	"github.com/pricetrail/pricetrail-backend/internal/handlers"
	"github.com/pricetrail/pricetrail-backend/internal/middleware"
	"github.com/pricetrail/pricetrail-backend/internal/services"
	"github.com/pricetrail/pricetrail-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	wishlistService := services.NewWishlistService(db)
	trackerService := services.NewTrackerService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWT)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	trackerHandler := handlers.NewTrackerHandler(trackerService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Public catalog routes
	r.GET("/", catalogHandler.Home)
	r.GET("/autocomplete", catalogHandler.Autocomplete)
	r.GET("/search", catalogHandler.Search)
	r.GET("/product/:id/history", catalogHandler.PriceHistory)

	// Authentication routes
	auth := r.Group("")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
	r.GET("/logout", authHandler.Logout)
	r.GET("/me", middleware.AuthRequired(cfg.JWT.CookieName), authHandler.Me)

	// Wishlist routes
	wishlist := r.Group("/wishlist")
	wishlist.Use(middleware.AuthRequired(cfg.JWT.CookieName))
	{
		wishlist.GET("", wishlistHandler.Get)
		wishlist.POST("/add/:product_id", wishlistHandler.Add)
		wishlist.POST("/remove/:item_id", wishlistHandler.Remove)
	}

	// Tracker ingestion routes
	tracker := r.Group("/tracker")
	tracker.Use(middleware.AuthRequired(cfg.JWT.CookieName))
	{
		tracker.GET("/products", trackerHandler.ListProducts)
		tracker.POST("/products", trackerHandler.CreateProduct)
		tracker.POST("/products/:id/prices", trackerHandler.RecordPrice)
		tracker.POST("/products/:id/image", trackerHandler.UploadProductImage)
	}

	return r
}
