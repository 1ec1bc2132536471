package main

import (
	"context"
	"fmt"
	"log"
	"modshop/app/echo-server/router"
	"modshop/business/nudge"
	"modshop/business/product"
	"modshop/internal/middleware"
	psqlRepo "modshop/internal/repository/postgres"
	redisRepo "modshop/internal/repository/redis"
	"modshop/internal/rest"
	"modshop/pkg/config"
	"modshop/pkg/database"
	redisdb "modshop/pkg/database/redis"
	"modshop/pkg/logger"
	"modshop/pkg/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ModShop nudge API", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis client", "error", err)
		}
	}()

	metrics.Init()

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	eventRepo := psqlRepo.NewNudgeEventRepository(db)
	statsRepo := redisRepo.NewNudgeStatsRepository(redisClient)

	// Init service
	productService := product.NewProductService(productRepo)
	nudgeService := nudge.NewNudgeService(
		statsRepo,
		productRepo,
		eventRepo,
		time.Duration(cfg.Nudge.CatalogTimeoutMS)*time.Millisecond,
	)

	// Init handler
	productHandler := rest.NewProductHandler(productService)
	nudgeHandler := rest.NewNudgeHandler(nudgeService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupNudgeRoutes(api, nudgeHandler)
	router.SetupProductRoutes(api, productHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
