package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ozgurkara/event-gallery-backend/internal/config"
	"github.com/ozgurkara/event-gallery-backend/internal/handler"
	"github.com/ozgurkara/event-gallery-backend/internal/repository"
	"github.com/ozgurkara/event-gallery-backend/internal/service"
	"github.com/ozgurkara/event-gallery-backend/pkg/database"
	"github.com/ozgurkara/event-gallery-backend/pkg/logger"
	"github.com/ozgurkara/event-gallery-backend/pkg/storage"
	"github.com/ozgurkara/event-gallery-backend/pkg/utils"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.LoadConfig()

	lg, err := logger.New()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	// Initialize database
	client, db, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		lg.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	lg.Info("connected to MongoDB", zap.String("database", cfg.MongoDB))

	// Storage driver
	objectStorage, err := newObjectStorage(cfg)
	if err != nil {
		lg.Fatal("failed to initialize object storage", zap.Error(err))
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)

	// Services
	eventService := service.NewEventService(eventRepo, objectStorage, lg)

	// Validator
	validator := utils.NewValidator()

	// Handlers
	eventHandler := handler.NewEventHandler(eventService, validator)

	// Router
	app := fiber.New(fiber.Config{
		BodyLimit: 120 * 1024 * 1024, // up to 10 images of 10MB each, plus form overhead
	})

	app.Use(cors.New())
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	events := api.Group("/events")
	events.Post("/", eventHandler.CreateEvent)
	events.Get("/", eventHandler.GetEvents)
	events.Get("/types", eventHandler.GetEventTypes)
	// image route must be registered before the event delete route
	events.Delete("/images/:eventId/:imageId", eventHandler.DeleteImage)
	events.Delete("/:eventId", eventHandler.DeleteEvent)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		lg.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			lg.Error("server shutdown failed", zap.Error(err))
		}
	}()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := app.Listen(":" + port); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(disconnectCtx); err != nil {
		lg.Error("failed to close MongoDB connection", zap.Error(err))
	} else {
		lg.Info("MongoDB connection closed")
	}
}

func newObjectStorage(cfg *config.Config) (storage.ObjectStorage, error) {
	switch cfg.StorageDriver {
	case "r2":
		return storage.NewR2Storage(cfg)
	case "images":
		return storage.NewCloudflareImages(
			cfg.CloudflareImages.AccountID,
			cfg.CloudflareImages.Token,
			cfg.CloudflareImages.Hash,
		), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.StorageDriver)
	}
}
