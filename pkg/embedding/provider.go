package embedding

import "context"

// Task types hint the provider what the embedding is for. Gemini uses them
// to pick an asymmetric embedding mode; OpenAI and Ollama ignore them.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
