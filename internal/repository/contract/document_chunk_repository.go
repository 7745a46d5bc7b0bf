package contract

import (
	"context"

	"github.com/CRautomation-ai/showcase-agent/internal/entity"
	"github.com/CRautomation-ai/showcase-agent/internal/repository/specification"
)

// DocumentChunkRepository is the vector store boundary. CreateBulk pairs
// chunks and vectors positionally; callers must pass same-length slices.
type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk, vectors [][]float32) error
	SearchSimilarWithScore(ctx context.Context, vector []float32, topK int) ([]*entity.ScoredChunk, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
}
