package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/toolhub/backoffice/internal/cache"
	"github.com/toolhub/backoffice/internal/config"
	h "github.com/toolhub/backoffice/internal/http"
	"github.com/toolhub/backoffice/internal/repository"
	"github.com/toolhub/backoffice/internal/service"
	"github.com/toolhub/backoffice/internal/uploader"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		cancel()
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("failed to create indexes: %v", err)
	}
	cancel()
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Printf("failed to disconnect from MongoDB: %v", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	statsCache := cache.NewRedisStatsCache(redisClient, cfg.StatsCacheTTL)
	imageUploader := uploader.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset)

	orderRepo := repository.NewOrderRepository(db)
	toolRepo := repository.NewToolRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	orderService := service.NewOrderService(orderRepo, statsCache)
	dashboardService := service.NewDashboardService(orderRepo, toolRepo, statsCache)
	catalogService := service.NewCatalogService(toolRepo, imageUploader, statsCache)
	categoryService := service.NewCategoryService(categoryRepo)
	userService := service.NewUserService(userRepo)

	router := h.NewRouter(
		h.RouterConfig{
			JWTSecret:      []byte(cfg.JWTSecret),
			RequestTimeout: cfg.RequestTimeout,
		},
		h.NewOrdersHandler(orderService, cfg.RequestTimeout),
		h.NewDashboardHandler(dashboardService, cfg.RequestTimeout),
		h.NewToolsHandler(catalogService, cfg.RequestTimeout, cfg.MaxUploadSize),
		h.NewCategoriesHandler(categoryService, cfg.RequestTimeout),
		h.NewUsersHandler(userService, cfg.RequestTimeout),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("back-office API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
