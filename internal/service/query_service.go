package service

import (
	"context"

	"github.com/CRautomation-ai/showcase-agent/internal/dto"
	"github.com/CRautomation-ai/showcase-agent/internal/pkg/logger"
	"github.com/CRautomation-ai/showcase-agent/internal/repository/unitofwork"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/answer"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/citation"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/rewrite"
)

type IQueryService interface {
	Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type queryService struct {
	answerer    *answer.Answerer
	logger      logger.ILogger
	defaultTopK int
}

func NewQueryService(answerer *answer.Answerer, defaultTopK int, logger logger.ILogger) IQueryService {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &queryService{
		answerer:    answerer,
		logger:      logger,
		defaultTopK: defaultTopK,
	}
}

func (s *queryService) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}

	previous := make([]rewrite.Turn, len(req.PreviousMessages))
	for i, pm := range req.PreviousMessages {
		previous[i] = rewrite.Turn{Query: pm.Query, Answer: pm.Answer}
	}

	res, err := s.answerer.Answer(ctx, req.Query, topK, previous)
	if err != nil {
		s.logger.Error("query", "RAG query failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("query", "RAG query answered", map[string]interface{}{
		"top_k":   topK,
		"sources": len(res.Sources),
	})

	return &dto.QueryResponse{
		Answer:  res.Answer,
		Sources: res.Sources,
	}, nil
}

// ChunkSearcher adapts the vector store repository to the answerer's
// Searcher contract.
type ChunkSearcher struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChunkSearcher(uowFactory unitofwork.RepositoryFactory) *ChunkSearcher {
	return &ChunkSearcher{uowFactory: uowFactory}
}

func (s *ChunkSearcher) SearchSimilar(ctx context.Context, vector []float32, topK int) ([]answer.RetrievedChunk, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, vector, topK)
	if err != nil {
		return nil, err
	}

	chunks := make([]answer.RetrievedChunk, len(scored))
	for i, sc := range scored {
		chunks[i] = answer.RetrievedChunk{
			Text: sc.Chunk.Text,
			Source: citation.Source{
				FolderPath: sc.Chunk.FolderPath,
				SourceFile: sc.Chunk.SourceFile,
				PageNumber: sc.Chunk.PageNumber,
			},
		}
	}
	return chunks, nil
}
