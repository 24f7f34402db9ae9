// main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/inngest/inngestgo"
	"github.com/joho/godotenv"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/services"
	"github.com/brandlens/visibility-workflows/workflows"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("dev.env"); err != nil {
			log.Printf("Note: No .env or dev.env file loaded: %v", err)
		} else {
			log.Printf("Loaded dev.env file for local development")
		}
	} else {
		log.Printf("Loaded .env file")
	}

	cfg := config.Load()

	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Port: %s", cfg.Port)
	log.Printf("Default models: %v", cfg.DefaultModels)

	if cfg.OpenAIAPIKey == "" {
		log.Printf("WARNING: OpenAI API key not loaded!")
	} else {
		log.Printf("OpenAI API key loaded (length: %d)", len(cfg.OpenAIAPIKey))
	}
	if cfg.AnthropicAPIKey == "" {
		log.Printf("WARNING: Anthropic API key not loaded!")
	} else {
		log.Printf("Anthropic API key loaded (length: %d)", len(cfg.AnthropicAPIKey))
	}
	if cfg.GeminiAPIKey == "" {
		log.Printf("WARNING: Gemini API key not loaded!")
	} else {
		log.Printf("Gemini API key loaded (length: %d)", len(cfg.GeminiAPIKey))
	}

	if cfg.Environment == "development" || cfg.Environment == "" {
		os.Unsetenv("INNGEST_SIGNING_KEY")
		cfg.InngestSigningKey = ""
		log.Printf("Running in development mode - signing key verification disabled")
	}

	// Initialize services
	costService := services.NewCostService()
	classifier := services.NewClassifierService()
	multiModelService := services.NewMultiModelService(cfg, classifier, costService)
	promptService := services.NewPromptService()
	categoryService := services.NewCategoryTestService(multiModelService, promptService)
	competitorScorer := services.NewCompetitorScoreService(multiModelService)
	reportService := services.NewReportService()
	brandAnalyzer := services.NewBrandAnalyzerService(cfg, costService)
	emailService := services.NewEmailService(cfg)
	log.Printf("Services initialized")

	// Create Inngest client
	client, err := inngestgo.NewClient(
		inngestgo.ClientOpts{
			AppID:    "visibility-workflows",
			EventKey: inngestgo.StrPtr(cfg.InngestEventKey),
			Env:      inngestgo.StrPtr(cfg.Environment),
		},
	)
	if err != nil {
		log.Fatalf("Failed to create Inngest client: %v", err)
	}

	log.Printf("Initializing ReportProcessor workflow...")
	reportProcessor := workflows.NewReportProcessor(
		brandAnalyzer,
		promptService,
		categoryService,
		competitorScorer,
		reportService,
		emailService,
		cfg,
	)
	reportProcessor.SetClient(client)
	reportProcessor.GenerateReport()
	log.Printf("All processors initialized and functions registered")

	handlers := newAPIHandlers(
		cfg,
		brandAnalyzer,
		promptService,
		multiModelService,
		categoryService,
		competitorScorer,
		reportService,
		emailService,
	)

	h := client.Serve()
	mux := http.NewServeMux()
	mux.Handle("/api/inngest", h)

	// Root endpoint for ALB health check
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"service":"visibility-workflows","status":"running"}`))
	})

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	mux.HandleFunc("/api/visibility/analyze-brand", handlers.analyzeBrand)
	mux.HandleFunc("/api/visibility/test-multi-model", handlers.testMultiModel)
	mux.HandleFunc("/api/visibility/check", handlers.runVisibilityCheck)
	mux.HandleFunc("/api/visibility/email-report", handlers.emailReport)
	mux.HandleFunc("/test/trigger-report", handlers.triggerReport(client))

	port := cfg.Port
	log.Printf("Starting visibility workflows service on port %s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}
