package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"github.com/careerpilot/careerpilot-api/internal/ai"
	"github.com/careerpilot/careerpilot-api/internal/config"
	"github.com/careerpilot/careerpilot-api/internal/database"
	"github.com/careerpilot/careerpilot-api/internal/handlers"
	"github.com/careerpilot/careerpilot-api/internal/middleware"
	"github.com/careerpilot/careerpilot-api/internal/services"
	"github.com/careerpilot/careerpilot-api/internal/types"

	_ "github.com/careerpilot/careerpilot-api/docs/api" // Swagger docs
)

// @title CareerPilot API
// @version 1.0.0
// @description Career management service: application tracking, resume storage and AI-assisted artifacts
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/careerpilot/careerpilot-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Local development convenience; production sets real env vars.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// AI provider clients
	clients, err := ai.NewClients(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI clients: %v", err)
	}

	// Session validation is delegated to the external Authorizer instance.
	resolver := services.NewAuthorizerResolver(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("careerpilot")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db}
	resumeHandler := &handlers.ResumeHandler{DB: db}
	appHandler := &handlers.ApplicationHandler{DB: db}
	aiHandler := &handlers.AIHandler{DB: db, Analyzer: clients.Analyzer, Generator: clients.Generator}
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db}

	// Account registration (public)
	api.Post("/auth/register", authHandler.Register)

	// Resume routes (authenticated)
	api.Post("/resumes", middleware.AuthUser(db, resolver), resumeHandler.Upload)
	api.Get("/resumes", middleware.AuthUser(db, resolver), resumeHandler.List)
	api.Delete("/resumes", middleware.AuthUser(db, resolver), resumeHandler.Delete)

	// Application pipeline routes (authenticated)
	api.Get("/applications", middleware.AuthUser(db, resolver), appHandler.List)
	api.Post("/applications", middleware.AuthUser(db, resolver), appHandler.Create)
	api.Put("/applications", middleware.AuthUser(db, resolver), appHandler.UpdateStatus)

	// AI routes serve guests under the per-IP quota
	aiGroup := api.Group("/ai", middleware.AuthOptional(db, resolver))
	aiGroup.Post("/analyze", aiHandler.Analyze)
	aiGroup.Post("/generate", aiHandler.Generate)
	aiGroup.Post("/preparation", aiHandler.Preparation)

	// Health check
	api.Get("/health", healthHandler.Check)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
