package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
)

// EmbeddingDimensions is the fixed length of every embedding vector.
const EmbeddingDimensions = 384

// Vector is a fixed-length embedding vector, stored as a JSON array.
type Vector []float64

// Value implements driver.Valuer for database storage.
func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner for database retrieval.
func (v *Vector) Scan(src any) error {
	if src == nil {
		*v = nil
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	default:
		return fmt.Errorf("unsupported vector column type %T", src)
	}
}

// GormDataType tells gorm which column type to use.
func (Vector) GormDataType() string {
	return "jsonb"
}

// Norm returns the L2 norm of the vector.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalized returns an L2-normalized copy of the vector.
// A zero vector is returned unchanged.
func (v Vector) Normalized() Vector {
	norm := v.Norm()
	out := make(Vector, len(v))
	if norm == 0 {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// CosineSimilarity computes cosine similarity between two vectors.
// Mismatched or zero-norm vectors yield 0.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
