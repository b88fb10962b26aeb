package embedding

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/habitflow/coach-api/internal/domain"
)

// Fallback computes a deterministic local embedding: each whitespace
// token is hashed to a bucket and contributes 1/sqrt(tokenCount), then
// the vector is L2-normalized. Identical input always yields an
// identical vector. Empty input yields the zero vector.
func Fallback(text string) domain.Vector {
	vec := make(domain.Vector, domain.EmbeddingDimensions)

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return vec
	}

	weight := 1 / math.Sqrt(float64(len(tokens)))
	for _, token := range tokens {
		vec[tokenBucket(token)] += weight
	}

	return vec.Normalized()
}

// tokenBucket maps a token to a stable vector position.
func tokenBucket(token string) int {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(token)))
	return int(h.Sum32() % domain.EmbeddingDimensions)
}
