// File: tutorhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorhub/clock"
	"tutorhub/config"
	"tutorhub/cron"
	"tutorhub/database"
	slotRepo "tutorhub/database/repository/slot"
	"tutorhub/handlers"
	"tutorhub/middleware"
	"tutorhub/routes"
	"tutorhub/services/slot"
	"tutorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	repo := slotRepo.NewMongoSlotRepo()
	if err := repo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure slot indexes: %v", err)
	}

	// services.
	sysClock := clock.NewSystem()
	slotService := &slot.DefaultSlotService{
		Repo:  repo,
		Clock: sysClock,
	}
	slotHandler := handlers.NewSlotHandler(slotService)

	// Register routes.
	routes.RegisterRoutes(router, slotHandler)

	// Background expired-slot cleanup.
	if !config.AppConfig.SlotCleanupDisabled {
		cron.InitSlotCleanupWorker(repo, sysClock)
	}

	utils.StartHealthMonitor([]*redis.Client{utils.GetAuthCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
