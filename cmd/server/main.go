package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"giftcard-backend/internal/config"
	"giftcard-backend/internal/database"
	"giftcard-backend/internal/handlers"
	"giftcard-backend/internal/middleware"
	"giftcard-backend/internal/notify"
	"giftcard-backend/internal/services"
	"giftcard-backend/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database connection and migrations
	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Object store
	objects, err := newObjectStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}

	// Optional admin dashboard notifications
	var notifier *notify.Notifier
	if cfg.RealtimeEnabled {
		notifier, err = notify.NewNotifier(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Printf("Warning: realtime notifications disabled: %v", err)
		}
	}

	// Services and handlers
	uploadService := services.NewUploadService(objects, dbClient, notifier)
	archiveService := services.NewArchiveService(dbClient, objects)

	uploadHandler := handlers.NewUploadHandler(uploadService)
	archiveHandler := handlers.NewArchiveHandler(archiveService)
	fileHandler := handlers.NewFileHandler(objects)
	ordersHandler := handlers.NewOrdersHandler(dbClient)
	healthHandler := handlers.NewHealthHandler(dbClient, objects)

	// Router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	api := router.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.POST("/upload", uploadHandler.Submit)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg))
	admin.GET("/orders", ordersHandler.List)
	admin.GET("/zip", archiveHandler.Download)
	admin.GET("/file", fileHandler.Serve)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newObjectStore(cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.StorageDriver {
	case config.DriverSupabase:
		return storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseStorageBucket)
	case config.DriverMemory:
		log.Println("Warning: memory object store configured, uploads are not persisted")
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewS3Store(context.Background(), storage.S3Options{
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	}
}
