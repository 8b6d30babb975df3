package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hiretrack/screening-api/internal/config"
	"hiretrack/screening-api/internal/handlers"
	"hiretrack/screening-api/internal/logger"
	"hiretrack/screening-api/internal/repositories"
	"hiretrack/screening-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.Server.Env)
	defer log.Sync()
	log.Info("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	log.Info("✅ Database initialized successfully")

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Info("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Info("✅ Gemini AI initialized successfully")

	// Initialize Qdrant-backed knowledge base. Guideline retrieval is
	// advisory, so a missing Qdrant URL disables it instead of failing boot.
	var knowledge services.KnowledgeBase
	if cfg.Qdrant.URL != "" {
		knowledge, err = services.NewKnowledgeBase(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := knowledge.EnsureCollection(context.Background()); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Info("✅ Qdrant initialized successfully")
	} else {
		log.Warn("⚠️ QDRANT_URL not set, guideline retrieval disabled")
	}

	// Initialize document pipeline services
	httpClient := &http.Client{Timeout: cfg.HTTP.RequestTimeout}

	pdfParser := services.NewPDFParserService()
	resolver := services.NewContentTypeResolver(httpClient, log)
	extractor := services.NewTextExtractor(geminiService, pdfParser, httpClient, log)
	assembler := services.NewDocumentAssembler(resolver, extractor, log)
	personal := services.NewPersonalDataExtractor(geminiService, log)
	log.Info("✅ Document services initialized successfully")

	// Initialize screening services
	scorer := services.NewApplicationScorer(geminiService, knowledge, log)
	screeningService := services.NewScreeningService(
		appRepo,
		jobRepo,
		analysisRepo,
		assembler,
		scorer,
		log,
	)
	documentsService := services.NewDocumentAnalysisService(assembler, personal, log)
	log.Info("✅ Screening services initialized")

	// Initialize and start worker
	worker := services.NewWorker(
		appRepo,
		screeningService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
		log,
	)
	worker.Start(context.Background())
	log.Info("✅ Worker started successfully")

	// Initialize handlers
	screeningHandler := handlers.NewScreeningHandler(screeningService)
	documentsHandler := handlers.NewDocumentsHandler(documentsService)
	applicationHandler := handlers.NewApplicationHandler(appRepo, jobRepo, worker)
	analysisHandler := handlers.NewAnalysisHandler(analysisRepo)
	log.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HireTrack Screening API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/ai-screening", screeningHandler.HandleScreen)
	api.Post("/analyze-documents", documentsHandler.HandleAnalyzeDocuments)
	api.Post("/applications", applicationHandler.HandleCreateApplication)
	api.Get("/applications/:id/analyses", analysisHandler.HandleListAnalyses)
	api.Get("/applications/:id/analyses/latest", analysisHandler.HandleLatestAnalysis)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HireTrack Screening API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/ai-screening",
				"POST /api/v1/analyze-documents",
				"POST /api/v1/applications",
				"GET /api/v1/applications/:id/analyses",
				"GET /api/v1/applications/:id/analyses/latest",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
