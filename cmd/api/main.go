package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := newLogger(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("config loaded", zap.Strings("models", cfg.Gemini.Models))

	if cfg.Gemini.APIKey == "" {
		// Requests will be rejected until the key is set; the server still
		// boots so the health endpoint works.
		log.Warn("GEMINI_API_KEY is not set, analysis requests will fail")
	}

	// Initialize services
	extractor := services.NewExtractorService()
	geminiService := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Temperature)

	// Initialize repository
	analysisRepo := repositories.NewAnalysisRepository(cfg.Cache.Capacity)
	log.Info("analysis cache initialized", zap.Int("capacity", cfg.Cache.Capacity))

	analyzerService := services.NewAnalyzerService(
		extractor,
		geminiService,
		analysisRepo,
		cfg.Gemini.Models,
		log,
	)

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		analyzerService,
		analysisRepo,
		cfg.Gemini.APIKey,
		cfg.Upload.MaxFileSize,
		log,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	app.Post("/analyze", analyzeHandler.HandleAnalyze)
	app.Get("/analyze", analyzeHandler.HandleGetAnalysis)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /analyze",
				"GET /analyze?id=<id>",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
