package main

import (
	"context"
	"log"
	"net/http"

	"github.com/habitflow/coach-api/internal/api"
	"github.com/habitflow/coach-api/internal/api/handler"
	"github.com/habitflow/coach-api/internal/config"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/embedding"
	"github.com/habitflow/coach-api/internal/notify"
	"github.com/habitflow/coach-api/internal/repository"
	"github.com/habitflow/coach-api/internal/seed"
	"github.com/habitflow/coach-api/internal/service"
	"github.com/habitflow/coach-api/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize tracing (noop when no OTLP endpoint is configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "habit-coach-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Failed to shut down tracer: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.CheckIn{},
		&domain.Goal{},
		&domain.ConversationTurn{},
		&domain.Insight{},
		&domain.SemanticEntry{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	insightRepo := repository.NewInsightRepository(db)
	semanticRepo := repository.NewSemanticRepository(db)

	// Initialize the embedding generator. Without an API key it runs on
	// the deterministic hash fallback.
	embedder := embedding.New(cfg.OpenAIAPIKey, cfg.OpenAIEmbeddingModel)
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OpenAI API key not configured, using deterministic fallback embeddings")
	}

	// Pick the intervention delivery channel
	notifier := newNotifier(cfg)

	// Initialize services
	similarityService := service.NewSimilarityService(semanticRepo, embedder)
	userService := service.NewUserService(userRepo)
	checkInService := service.NewCheckInService(checkInRepo, userRepo)
	goalService := service.NewGoalService(goalRepo, userRepo, similarityService)
	conversationService := service.NewConversationService(conversationRepo, userRepo)
	patternService := service.NewPatternService()
	predictionService := service.NewPredictionService(checkInRepo, goalRepo, conversationRepo, userRepo, similarityService, notifier)
	insightService := service.NewInsightService(insightRepo, userRepo, similarityService)
	analysisService := service.NewAnalysisService(userRepo, checkInRepo, goalRepo, conversationRepo, patternService, predictionService, insightService)

	// Index the curated coaching knowledge base
	if err := seed.EnsureKnowledgeBase(ctx, similarityService); err != nil {
		log.Fatalf("Failed to index coaching knowledge base: %v", err)
	}

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	checkInHandler := handler.NewCheckInHandler(checkInService)
	goalHandler := handler.NewGoalHandler(goalService)
	conversationHandler := handler.NewConversationHandler(conversationService)
	analysisHandler := handler.NewAnalysisHandler(analysisService, predictionService, insightService, similarityService)

	// Setup router
	router := api.NewRouter(userHandler, checkInHandler, goalHandler, conversationHandler, analysisHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newNotifier picks the first configured delivery channel: NATS, then
// webhook, then log-only.
func newNotifier(cfg *config.Config) notify.Notifier {
	if cfg.NATSURL != "" {
		notifier, err := notify.NewNATSNotifier(cfg.NATSURL, cfg.NATSToken)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		log.Printf("Intervention delivery via NATS (%s)", cfg.NATSURL)
		return notifier
	}
	if cfg.NotifyWebhookURL != "" {
		log.Printf("Intervention delivery via webhook (%s)", cfg.NotifyWebhookURL)
		return notify.NewWebhookNotifier(cfg.NotifyWebhookURL, cfg.NotifyAuthToken)
	}
	log.Println("Intervention delivery not configured, interventions will be logged only")
	return notify.NewLogNotifier()
}
