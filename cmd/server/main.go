package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/scholarhub/scholarhub-backend/internal/cache"
	"github.com/scholarhub/scholarhub-backend/internal/config"
	"github.com/scholarhub/scholarhub-backend/internal/database"
	"github.com/scholarhub/scholarhub-backend/internal/handlers"
	"github.com/scholarhub/scholarhub-backend/internal/logging"
	"github.com/scholarhub/scholarhub-backend/internal/middleware"
	"github.com/scholarhub/scholarhub-backend/internal/routes"
	"github.com/scholarhub/scholarhub-backend/internal/services"
	"github.com/scholarhub/scholarhub-backend/internal/upload"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Redis caches
	redisClient := cache.New(cfg)
	scholarshipCache := cache.NewScholarshipCache(redisClient, cfg.TopScholarshipsTTL)
	analyticsCache := cache.NewAnalyticsCache(redisClient, cfg.AnalyticsTTL)

	// Media uploads
	var uploader upload.Uploader
	if cfg.CloudinaryURL != "" {
		cld, err := upload.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			slog.Error("cloudinary init failed", "error", err)
			os.Exit(1)
		}
		uploader = cld
	} else {
		slog.Warn("CLOUDINARY_URL not set, image uploads disabled")
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	userService := services.NewUserService(database.DB)
	scholarshipService := services.NewScholarshipService(database.DB, scholarshipCache)
	paymentService := services.NewPaymentService(cfg)
	applicationService := services.NewApplicationService(database.DB, paymentService, analyticsCache)
	reviewService := services.NewReviewService(database.DB, services.NewContentFilter())
	analyticsService := services.NewAnalyticsService(database.DB, analyticsCache)

	// Handlers
	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, userService),
		Scholarships: handlers.NewScholarshipHandler(scholarshipService),
		Applications: handlers.NewApplicationHandler(applicationService, userService),
		Reviews:      handlers.NewReviewHandler(reviewService, userService),
		Users:        handlers.NewUserHandler(userService),
		Payments:     handlers.NewPaymentHandler(paymentService),
		Webhooks:     handlers.NewWebhookHandler(applicationService, cfg.StripeWebhookSecret),
		Uploads:      handlers.NewUploadHandler(uploader, cfg.CloudinaryFolder),
		Analytics:    handlers.NewAnalyticsHandler(analyticsService),
		Health:       handlers.NewHealthHandler(redisClient),
		Config:       handlers.NewConfigHandler(cfg),
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
