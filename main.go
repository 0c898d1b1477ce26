package main

import (
	"log"
	"time"

	"notely-be/internal/cache"
	"notely-be/internal/config"
	"notely-be/internal/controllers"
	"notely-be/internal/database"
	"notely-be/internal/jwt"
	"notely-be/internal/middleware"
	"notely-be/internal/repository"
	"notely-be/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTL)*time.Minute,
		time.Duration(cfg.JWTRefreshTTL)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	noteService := service.NewNoteService(noteRepo, cacheClient)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	categoryController := controllers.NewCategoryController(categoryService, cfg.PageSize, cfg.MaxPageSize)
	noteController := controllers.NewNoteController(noteService, cfg.PageSize, cfg.MaxPageSize)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API v1 routes group with general rate limiting
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/token", authController.Token)
			auth.POST("/token/refresh", authController.TokenRefresh)
		}

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/categories", categoryController.List)
			protected.POST("/categories", categoryController.Create)
			protected.GET("/categories/:id", categoryController.Get)
			protected.PUT("/categories/:id", categoryController.Update)
			protected.PATCH("/categories/:id", categoryController.Patch)
			protected.DELETE("/categories/:id", categoryController.Delete)

			protected.GET("/notes", noteController.List)
			protected.POST("/notes", noteController.Create)
			protected.GET("/notes/:id", noteController.Get)
			protected.PUT("/notes/:id", noteController.Update)
			protected.PATCH("/notes/:id", noteController.Patch)
			protected.DELETE("/notes/:id", noteController.Delete)
		}
	}

	// Start the server
	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
