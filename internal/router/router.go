package router

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/blipsapp/backend/internal/handlers"
	"github.com/blipsapp/backend/internal/middleware"
	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
	"github.com/blipsapp/backend/internal/services"
	"github.com/blipsapp/backend/pkg/blobstore"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, blobs blobstore.Store, logger *zap.Logger) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.Notification{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mdb := mgClient.Database("blips")
	userRepo := repositories.NewMongoUserRepository(mdb)
	blipRepo := repositories.NewMongoBlipRepository(mdb)
	commentRepo := repositories.NewMongoCommentRepository(mdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	ctx := context.Background()
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	if err := blipRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create blip indexes: %v", err)
	}
	if err := commentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create comment indexes: %v", err)
	}
	log.Println("MongoDB indexes ensured.")

	// --- Initialize Services ---
	notificationService := services.NewNotificationService(notificationRepo, logger)
	mentionService := services.NewMentionService(userRepo, notificationService, logger)
	userService := services.NewUserService(userRepo, logger)
	blipService := services.NewBlipService(blipRepo, userRepo, notificationService, mentionService, blobs, logger)
	commentService := services.NewCommentService(commentRepo, blipRepo, notificationService, mentionService, logger)
	followService := services.NewFollowService(userRepo, notificationService, logger)
	feedService := services.NewFeedService(blipRepo, userRepo)
	searchService := services.NewSearchService(userRepo, blipRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userService, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User profile routes configured.")

	// Blip routes
	blipHandler := handlers.NewBlipHandler(blipService)
	blipHandler.RegisterBlipRoutes(api)
	log.Println("Blip routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Search routes
	searchHandler := handlers.NewSearchHandler(searchService)
	searchHandler.RegisterSearchRoutes(api)
	log.Println("Search routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Media upload routes
	mediaHandler := handlers.NewMediaHandler(blobs)
	mediaHandler.RegisterMediaRoutes(api)
	log.Println("Media routes configured.")

	log.Println("All routes configured.")
}
