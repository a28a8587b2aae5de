package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/resiplicity/backend/config"
	"github.com/resiplicity/backend/internal/middleware"
	"github.com/resiplicity/backend/internal/service"
)

// RegisterRoutes sets up all API routes. redisClient and s3Config may be nil;
// draft storage, rate limiting and image re-hosting degrade gracefully without
// them.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, jwtSecret string) error {
	authService := service.NewAuthService(db, jwtSecret)
	llmService, err := service.NewLLMService(redisClient)
	if err != nil {
		return err
	}
	recipeService := service.NewRecipeService(db)
	voteService := service.NewVoteService(db)
	imageService := service.NewPlatingImageService(s3Config)

	authHandler := NewAuthHandler(authService)
	llmHandler := NewLLMHandler(llmService, recipeService)
	recipeHandler := NewRecipeHandler(recipeService, voteService)
	imageHandler := NewImageHandler(imageService)

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	recipes := v1.Group("/recipes")
	{
		recipes.GET("", recipeHandler.List)
		recipes.GET("/:id", recipeHandler.Get)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		llm := protected.Group("/llm")
		if redisClient != nil {
			llm.Use(middleware.NewGenerationRateLimiter(redisClient).RateLimitMiddleware())
		}
		llm.POST("/generate", llmHandler.Generate)
		protected.GET("/llm/drafts/:id", llmHandler.GetDraft)
		protected.DELETE("/llm/drafts/:id", llmHandler.DeleteDraft)

		protected.POST("/recipes", recipeHandler.Create)
		protected.POST("/recipes/:id/vote", recipeHandler.Vote)
		protected.GET("/saved-recipes", recipeHandler.ListSaved)

		images := protected.Group("/images")
		if redisClient != nil {
			images.Use(middleware.NewImageRateLimiter(redisClient).RateLimitMiddleware())
		}
		images.POST("/plating", imageHandler.GeneratePlating)
	}

	return nil
}

// userIDFromContext pulls the authenticated user's id set by AuthMiddleware.
func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
