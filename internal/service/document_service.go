package service

import (
	"context"
	"fmt"

	"github.com/CRautomation-ai/showcase-agent/internal/dto"
	"github.com/CRautomation-ai/showcase-agent/internal/entity"
	"github.com/CRautomation-ai/showcase-agent/internal/pkg/logger"
	"github.com/CRautomation-ai/showcase-agent/internal/repository/unitofwork"
	"github.com/CRautomation-ai/showcase-agent/pkg/embedding"
	"github.com/CRautomation-ai/showcase-agent/pkg/extract"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/chunker"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// UploadFile is one file received in a multipart upload.
type UploadFile struct {
	Filename string
	Data     []byte
}

type IDocumentService interface {
	Upload(ctx context.Context, files []UploadFile) (*dto.UploadResponse, error)
	ClearAll(ctx context.Context) (*dto.ClearDocumentsResponse, error)
	Health(ctx context.Context) *dto.HealthResponse
}

type documentService struct {
	uowFactory   unitofwork.RepositoryFactory
	extractor    extract.Extractor
	embedder     embedding.EmbeddingProvider
	chunker      *chunker.Chunker
	logger       logger.ILogger
	embedWorkers int
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	extractor extract.Extractor,
	embedder embedding.EmbeddingProvider,
	chunkSize, chunkOverlap, embedWorkers int,
	logger logger.ILogger,
) IDocumentService {
	if embedWorkers <= 0 {
		embedWorkers = 1
	}
	return &documentService{
		uowFactory:   uowFactory,
		extractor:    extractor,
		embedder:     embedder,
		chunker:      chunker.New(chunkSize, chunkOverlap),
		logger:       logger,
		embedWorkers: embedWorkers,
	}
}

// Upload replaces the whole corpus with the given files: extract, chunk,
// embed, then clear-and-insert inside one transaction so a failed upload
// leaves the previous corpus intact.
func (s *documentService) Upload(ctx context.Context, files []UploadFile) (*dto.UploadResponse, error) {
	// Reject the whole batch before reading any file.
	filenames := make([]string, len(files))
	for i, f := range files {
		if !extract.Supported(f.Filename) {
			return nil, fmt.Errorf("%w: %s", extract.ErrUnsupportedFileType, f.Filename)
		}
		filenames[i] = f.Filename
	}

	s.logger.Info("document", "Received files for upload", map[string]interface{}{
		"count":     len(files),
		"filenames": filenames,
	})

	chunks, err := s.buildChunks(ctx, files)
	if err != nil {
		return nil, err
	}

	vectors, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	deleted, err := uow.DocumentChunkRepository().DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("clear existing chunks: %w", err)
	}
	if len(chunks) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunks, vectors); err != nil {
			return nil, fmt.Errorf("store chunks: %w", err)
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("document", "Upload committed", map[string]interface{}{
		"chunks_deleted": deleted,
		"chunks_stored":  len(chunks),
	})

	message := "Files uploaded and processed successfully"
	if len(chunks) == 0 {
		message = "Files uploaded but no text content found"
	}

	return &dto.UploadResponse{
		Message:         message,
		FilesProcessed:  len(files),
		ChunksProcessed: len(chunks),
		Filenames:       filenames,
	}, nil
}

func (s *documentService) buildChunks(ctx context.Context, files []UploadFile) ([]*entity.DocumentChunk, error) {
	var chunks []*entity.DocumentChunk

	for _, f := range files {
		pages, err := s.extractor.Extract(ctx, f.Filename, f.Data)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", f.Filename, err)
		}

		fileType := entity.FileTypePdf
		if ext := extract.Ext(f.Filename); ext == ".docx" || ext == ".doc" {
			fileType = entity.FileTypeDocx
		}

		fileChunks := 0
		for _, page := range pages {
			for idx, text := range s.chunker.Split(page.Text) {
				chunks = append(chunks, &entity.DocumentChunk{
					Id:         uuid.New(),
					Text:       text,
					SourceFile: f.Filename,
					PageNumber: page.PageNumber,
					ChunkIndex: idx,
					Metadata: entity.ChunkMetadata{
						FilePath: f.Filename,
						FileType: fileType,
					},
				})
				fileChunks++
			}
		}

		s.logger.Info("document", "Processed file", map[string]interface{}{
			"filename": f.Filename,
			"chunks":   fileChunks,
		})
	}

	return chunks, nil
}

// embedChunks generates one vector per chunk with a bounded worker pool.
// vectors[i] always belongs to chunks[i]; storage pairs them positionally.
func (s *documentService) embedChunks(ctx context.Context, chunks []*entity.DocumentChunk) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.embedWorkers)

	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			vec, err := s.embedder.Generate(gctx, c.Text, embedding.TaskRetrievalDocument)
			if err != nil {
				return fmt.Errorf("embed chunk %d of %s: %w", c.ChunkIndex, c.SourceFile, err)
			}
			vectors[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func (s *documentService) ClearAll(ctx context.Context) (*dto.ClearDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.DocumentChunkRepository().DeleteAll(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document", "Cleared document chunks", map[string]interface{}{
		"chunks_deleted": deleted,
	})

	return &dto.ClearDocumentsResponse{
		Message:       fmt.Sprintf("Deleted %d document chunks", deleted),
		ChunksDeleted: deleted,
	}, nil
}

func (s *documentService) Health(ctx context.Context) *dto.HealthResponse {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.DocumentChunkRepository().Count(ctx)
	if err != nil {
		s.logger.Error("document", "Health check failed", map[string]interface{}{"error": err.Error()})
		return &dto.HealthResponse{Status: "unhealthy"}
	}

	return &dto.HealthResponse{
		Status:            "healthy",
		DatabaseConnected: true,
		DocumentsLoaded:   count > 0,
	}
}
