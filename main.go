// File: slotgrid/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotgrid/config"
	"slotgrid/cron"
	"slotgrid/database"
	availabilityRepo "slotgrid/database/repository/availability"
	"slotgrid/handlers"
	"slotgrid/middleware"
	"slotgrid/routes"
	"slotgrid/services/availability"
	"slotgrid/services/calendar"
	"slotgrid/services/grid"
	"slotgrid/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Calendar provider over the configured OAuth refresh token.
	oauthConf := &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		Endpoint:     google.Endpoint,
	}
	tokenSource := oauthConf.TokenSource(context.Background(), &oauth2.Token{
		RefreshToken: config.AppConfig.GoogleRefreshToken,
	})
	provider, err := calendar.NewGoogleProvider(context.Background(), tokenSource)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar provider: %v", err)
	}

	// Queue client for delayed refresh polls, sharing Redis with asynq.
	queue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queue.Close()

	cacheClient := utils.GetCacheClient()
	cron.InitRefreshWorker(provider, cacheClient, queue)

	// services.
	handlers.AvailabilityService = &availability.DefaultAvailabilityService{
		Repo:  availabilityRepo.NewMongoAvailabilityRepo(),
		Cache: cacheClient,
	}
	handlers.GridSvc = &grid.DefaultGridService{
		Provider: provider,
		Cache:    cacheClient,
		Queue:    queue,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router)

	utils.StartHealthMonitor([]*redis.Client{cacheClient}, database.MongoClient)

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
