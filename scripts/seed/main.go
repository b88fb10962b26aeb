package main

import (
	"context"
	"log"

	"github.com/habitflow/coach-api/internal/config"
	"github.com/habitflow/coach-api/internal/embedding"
	"github.com/habitflow/coach-api/internal/repository"
	"github.com/habitflow/coach-api/internal/seed"
	"github.com/habitflow/coach-api/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	embedder := embedding.New(cfg.OpenAIAPIKey, cfg.OpenAIEmbeddingModel)
	similarity := service.NewSimilarityService(repository.NewSemanticRepository(db), embedder)

	if err := seed.EnsureKnowledgeBase(context.Background(), similarity); err != nil {
		log.Fatalf("Failed to index coaching knowledge base: %v", err)
	}

	log.Println("Seeding complete")
}
