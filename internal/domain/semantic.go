package domain

import (
	"time"

	"github.com/google/uuid"
)

// SemanticKind separates the namespaces of the vector index.
type SemanticKind string

const (
	// SemanticKnowledge is the curated coaching knowledge base.
	SemanticKnowledge SemanticKind = "knowledge"
	// SemanticInsight indexes generated insights for reuse.
	SemanticInsight SemanticKind = "insight"
	// SemanticBehavior indexes raw behavior snapshots (e.g. goal outcomes).
	SemanticBehavior SemanticKind = "behavior"
)

// SemanticEntry is a stored embedding with its source text and
// metadata. IDs are caller-assigned so writes are upsert-style.
type SemanticEntry struct {
	ID        string       `gorm:"type:varchar(128);primaryKey" json:"id"`
	Kind      SemanticKind `gorm:"type:varchar(16);not null;index" json:"kind"`
	UserID    *uuid.UUID   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Text      string       `gorm:"type:text;not null" json:"text"`
	Metadata  JSONMap      `gorm:"type:jsonb" json:"metadata,omitempty"`
	Embedding Vector       `gorm:"type:jsonb" json:"-"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (SemanticEntry) TableName() string {
	return "semantic_entries"
}

// SemanticMatch is a search hit with its similarity to the query.
type SemanticMatch struct {
	Entry      SemanticEntry `json:"entry"`
	Similarity float64       `json:"similarity"`
}

// KnowledgeMatchResponse is the response body for knowledge search hits.
type KnowledgeMatchResponse struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Metadata   JSONMap `json:"metadata,omitempty"`
	Similarity float64 `json:"similarity"`
}

// ToKnowledgeResponse strips the stored embedding from a search hit.
func (m SemanticMatch) ToKnowledgeResponse() KnowledgeMatchResponse {
	return KnowledgeMatchResponse{
		ID:         m.Entry.ID,
		Text:       m.Entry.Text,
		Metadata:   m.Entry.Metadata,
		Similarity: m.Similarity,
	}
}
