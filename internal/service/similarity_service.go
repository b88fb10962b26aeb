package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/embedding"
	"github.com/habitflow/coach-api/internal/repository"
)

const (
	// KnowledgeSearchThreshold is the minimum similarity for coaching
	// knowledge-base matches.
	KnowledgeSearchThreshold = 0.78
	// BehaviorSearchThreshold is the minimum similarity for historical
	// behavior matches.
	BehaviorSearchThreshold = 0.75
	// DefaultSearchLimit caps results when the caller passes no limit.
	DefaultSearchLimit = 5
)

// SimilarityService stores and queries embedding vectors. Embedding
// failures degrade transparently to the deterministic fallback, so
// both Store and Search stay well-defined when the model is down.
type SimilarityService interface {
	// Store embeds the entry's text (unless a vector is already
	// attached) and persists it keyed by the entry ID.
	Store(ctx context.Context, entry *domain.SemanticEntry) error
	// Search returns up to limit entries of the given kind whose cosine
	// similarity to the query exceeds threshold, ordered by descending
	// similarity. A non-nil userID narrows to that user's entries.
	Search(ctx context.Context, kind domain.SemanticKind, userID *uuid.UUID, query string, threshold float64, limit int) ([]domain.SemanticMatch, error)
}

type similarityService struct {
	semanticRepo repository.SemanticRepository
	embedder     embedding.Generator
}

// NewSimilarityService creates a new SimilarityService.
func NewSimilarityService(semanticRepo repository.SemanticRepository, embedder embedding.Generator) SimilarityService {
	return &similarityService{
		semanticRepo: semanticRepo,
		embedder:     embedder,
	}
}

func (s *similarityService) Store(ctx context.Context, entry *domain.SemanticEntry) error {
	if len(entry.Embedding) == 0 {
		entry.Embedding = s.embedder.Generate(ctx, entry.Text)
	}
	return s.semanticRepo.Upsert(ctx, entry)
}

func (s *similarityService) Search(ctx context.Context, kind domain.SemanticKind, userID *uuid.UUID, query string, threshold float64, limit int) ([]domain.SemanticMatch, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	queryVec := s.embedder.Generate(ctx, query)

	entries, err := s.semanticRepo.ListByKind(ctx, kind, userID)
	if err != nil {
		return nil, err
	}

	matches := []domain.SemanticMatch{}
	for _, entry := range entries {
		sim := domain.CosineSimilarity(queryVec, entry.Embedding)
		if sim >= threshold {
			matches = append(matches, domain.SemanticMatch{Entry: entry, Similarity: sim})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
