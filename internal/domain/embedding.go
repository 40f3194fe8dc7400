package domain

import "context"

// EmbeddingResult is the embedding vector with provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder converts text into a fixed-dimension embedding vector.
// Provider failures must surface as errors, never as a zero vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker is implemented by embedders that can probe provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
