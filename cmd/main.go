package main

import (
	"context"
	"fmt"
	"log"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"notehub/internal/caching"
	"notehub/internal/config"
	"notehub/internal/handlers"
	"notehub/internal/middleware"
	"notehub/internal/repositories"
	"notehub/internal/services"
	"notehub/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	noteRepo := repositories.NewNoteRepo(pool)

	// Cache service, used for auth endpoint rate limiting
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Services
	authSvc := services.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := services.NewUserService(userRepo, noteRepo, authSvc)
	noteSvc := services.NewNoteService(noteRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(userSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	noteHandlers := handlers.NewNoteHandlers(noteSvc)

	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", func(c echo.Context) error {
		return handlers.ReadinessCheck(c, pool)
	})

	// Authentication routes
	auth := e.Group("/auth")
	auth.Use(middleware.RateLimit(cacheSvc, cfg.AuthRateLimit, cfg.AuthRateWindow))
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/forgot-password", authHandlers.ForgotPassword)

	// Protected routes
	protected := e.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(cfg.JWTSecret)))

	// Note routes
	protected.GET("/notes", noteHandlers.ListNotes)
	protected.POST("/notes", noteHandlers.CreateNote)
	protected.GET("/notes/stats", noteHandlers.NoteStats)
	protected.GET("/notes/:id", noteHandlers.GetNote)
	protected.PUT("/notes/:id", noteHandlers.UpdateNote)
	protected.DELETE("/notes/:id", noteHandlers.DeleteNote)
	protected.POST("/notes/:id/pin", noteHandlers.TogglePin)
	protected.POST("/notes/:id/archive", noteHandlers.ToggleArchive)

	// User routes
	protected.GET("/users/profile", userHandlers.Profile)
	protected.PUT("/users/profile", userHandlers.UpdateProfile)
	protected.POST("/users/change-password", userHandlers.ChangePassword)
	protected.GET("/users/dashboard", userHandlers.Dashboard)
	protected.DELETE("/users/account", userHandlers.DeactivateAccount)

	log.Printf("Notehub server v%s starting on port %d", version, cfg.Port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
