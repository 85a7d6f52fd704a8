package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ecommerce-catalog/config"
	deliveryHttp "go-ecommerce-catalog/internal/delivery/http"
	"go-ecommerce-catalog/internal/delivery/http/handler"
	"go-ecommerce-catalog/internal/delivery/http/middleware"
	"go-ecommerce-catalog/internal/infrastructure/cache"
	"go-ecommerce-catalog/internal/infrastructure/database"
	"go-ecommerce-catalog/internal/repository"
	"go-ecommerce-catalog/internal/service"
	"go-ecommerce-catalog/internal/usecase"
	"go-ecommerce-catalog/pkg/priceparser"
	"go-ecommerce-catalog/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	MongoClient *mongo.Client
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize MongoDB
	client, db, err := database.NewMongoConnection(cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	app.MongoClient = client

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	imageRepo := repository.NewProductImageRepository(db)

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	thumbnails := service.NewThumbnailService()

	// Initialize usecases
	productUsecase := usecase.NewProductUsecase(productRepo, imageRepo, thumbnails, redisClient, priceparser.Parse, log)
	imageUsecase := usecase.NewProductImageUsecase(productRepo, imageRepo, thumbnails, log)

	// Initialize handlers
	welcomeHandler := handler.NewWelcomeHandler()
	productHandler := handler.NewProductHandler(productUsecase, customValidator, cfg.Upload.MaxBytes)
	imageHandler := handler.NewProductImageHandler(imageUsecase, customValidator, cfg.Upload.MaxBytes)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	requestIDMiddleware := middleware.NewRequestIDMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(welcomeHandler, productHandler, imageHandler, corsMiddleware, requestIDMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close(ctx)

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close(ctx context.Context) {
	if app.MongoClient != nil {
		if err := app.MongoClient.Disconnect(ctx); err != nil {
			logrus.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
