package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"businessconnect/config"
	"businessconnect/database"
	"businessconnect/database/repository"
	"businessconnect/handlers"
	"businessconnect/middleware"
	"businessconnect/routes"
	"businessconnect/services/activity"
	"businessconnect/services/analytics"
	"businessconnect/services/business"
	"businessconnect/services/review"
	"businessconnect/services/storage"
	"businessconnect/services/user"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.InitRedis()

	// repositories.
	var repos repository.Repositories
	if database.UseMemoryStore() {
		logger.Warn("Using in-memory store; data will not survive a restart")
		repos = repository.NewMemoryRepositories()
	} else {
		database.InitDB()
		repos = repository.NewMongoRepositories()
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, utils.RedisClients(), database.MongoClient)

	var images storage.ImageStore
	cloudinaryStore, err := storage.NewCloudinaryStore()
	if err != nil {
		logger.Warn("Image uploads disabled", zap.Error(err))
		images = storage.Unconfigured()
	} else {
		images = cloudinaryStore
	}

	viewPolicy, err := analytics.ParseViewPolicy(config.AppConfig.ViewPolicy)
	if err != nil {
		logger.Fatal("main: invalid analytics view policy", zap.Error(err))
	}

	// services.
	activityService := activity.NewActivityService(repos.Activities)
	analyticsService := analytics.NewAnalyticsService(
		repos.Analytics,
		viewPolicy,
		config.AppConfig.ViewDedupWindow,
		analytics.RedisDeduper{Client: utils.GetCacheClient()},
	)
	userService := user.NewUserService(repos.Users, activityService)
	businessService := business.NewBusinessService(repos.Businesses, repos.Reviews, analyticsService, activityService, images)
	reviewService := review.NewReviewService(repos.Reviews, repos.Businesses, repos.Users, activityService)

	handlerBundle := handlers.NewHandlerBundle(userService, businessService, reviewService)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestLogger())
	router.Use(utils.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, userService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
