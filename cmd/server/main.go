package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "news-events-api/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"news-events-api/internal/auth"
	"news-events-api/internal/config"
	"news-events-api/internal/db"
	"news-events-api/internal/handler"
	"news-events-api/internal/media"
	"news-events-api/internal/repository"
	"news-events-api/internal/router"
	"news-events-api/internal/service"
)

// @title News and Events API
// @version 1.0
// @description Content management API for news and events with a category taxonomy, image galleries and JWT-protected admin endpoints.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// A missing .env is fine; deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := db.Migrate(pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	newsRepo := repository.NewNewsEventRepository(pool)
	imageRepo := repository.NewNewsEventImageRepository(pool)

	// Initialize auth and media components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry())
	resolver := media.NewResolver(cfg.UploadsDir, cfg.PublicBaseURL)
	reconciler := media.NewReconciler(imageRepo, resolver)

	// Initialize services
	adminService := service.NewAdminService(adminRepo, jwtService)
	categoryService := service.NewCategoryService(categoryRepo)
	newsService := service.NewNewsEventService(newsRepo, imageRepo, resolver, reconciler)

	// Initialize handlers
	adminHandler := handler.NewAdminHandler(adminService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	newsHandler := handler.NewNewsEventHandler(newsService, resolver)
	healthHandler := handler.NewHealthHandler()

	// Register routes
	e := echo.New()
	router.Register(e, cfg, jwtService, adminHandler, categoryHandler, newsHandler, healthHandler)

	// Serve until a shutdown signal arrives
	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	if err := pool.Close(); err != nil {
		slog.Error("closing database pool", "error", err)
	}
}
