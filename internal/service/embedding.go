package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingService produces deterministic embeddings for food names so that
// similar-looking names cluster together in similarity search.
type EmbeddingService struct{}

// NewEmbeddingService creates a new EmbeddingService instance
func NewEmbeddingService() *EmbeddingService {
	return &EmbeddingService{}
}

// GenerateEmbedding returns a simple deterministic embedding for the given text.
// This implementation counts the total length, vowels and consonants.
func (s *EmbeddingService) GenerateEmbedding(text string) (pgvector.Vector, error) {
	text = strings.ToLower(text)
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	length := float32(len(text))
	return pgvector.NewVector([]float32{length, vowels, consonants}), nil
}
