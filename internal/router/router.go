// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hydrolink/hydrolink-backend/internal/config"
	"github.com/hydrolink/hydrolink-backend/internal/handlers"
	"github.com/hydrolink/hydrolink-backend/internal/middleware"
	"github.com/hydrolink/hydrolink-backend/internal/services"
	"github.com/hydrolink/hydrolink-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	reviewService := services.NewReviewService(db)

	// Initialize handlers
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Tokens are issued by the identity service with this shared secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		reviews := v1.Group("/reviews")
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.GET("/product/:productId", reviewHandler.GetProductReviews)
			reviews.GET("/user/:userId", middleware.AuthRequired(), reviewHandler.GetUserReviews)
			reviews.GET("/:id", reviewHandler.GetReview)

			// Authenticated routes
			protected := reviews.Group("")
			protected.Use(middleware.AuthRequired(), middleware.WriteRateLimit())
			{
				protected.POST("", reviewHandler.CreateReview)
				protected.PUT("/:id", reviewHandler.UpdateReview)
				protected.DELETE("/:id", reviewHandler.DeleteReview)
			}
		}
	}

	return r
}
