package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/CRautomation-ai/showcase-agent/internal/entity"
	"github.com/CRautomation-ai/showcase-agent/internal/repository/contract"
	"github.com/CRautomation-ai/showcase-agent/internal/repository/specification"
	"github.com/CRautomation-ai/showcase-agent/internal/repository/unitofwork"
	"github.com/CRautomation-ai/showcase-agent/pkg/extract"
)

// --- fakes ---

type fakeChunkRepo struct {
	mu             sync.Mutex
	storedChunks   []*entity.DocumentChunk
	storedVectors  [][]float32
	deleteAllCalls int
	deleteAllRows  int64
	countValue     int64
	countErr       error
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk, vectors [][]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storedChunks = append(r.storedChunks, chunks...)
	r.storedVectors = append(r.storedVectors, vectors...)
	return nil
}

func (r *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, vector []float32, topK int) ([]*entity.ScoredChunk, error) {
	return nil, nil
}

func (r *fakeChunkRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteAllCalls++
	return r.deleteAllRows, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return r.countValue, r.countErr
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	return nil, nil
}

type fakeUow struct {
	repo       *fakeChunkRepo
	began      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUow) Begin(ctx context.Context) error { u.began = true; return nil }
func (u *fakeUow) Commit() error                   { u.committed = true; return nil }
func (u *fakeUow) Rollback() error                 { u.rolledBack = true; return nil }
func (u *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return u.repo
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeExtractor struct {
	pages map[string][]extract.Page
	err   error
	calls int
}

func (e *fakeExtractor) Extract(ctx context.Context, filename string, data []byte) ([]extract.Page, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.pages[filename], nil
}

type countingEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

// Generate returns a vector encoding the text length so positional pairing
// can be asserted later.
func (e *countingEmbedder) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return []float32{float32(len(text))}, nil
}

func intPtr(n int) *int { return &n }

func newTestDocumentService(uow *fakeUow, ex *fakeExtractor, em *countingEmbedder) IDocumentService {
	return NewDocumentService(&fakeUowFactory{uow: uow}, ex, em, 100, 0, 2, noopLogger{})
}

// --- tests ---

func TestUpload_UnsupportedTypeRejectedBeforeAnyExtraction(t *testing.T) {
	ex := &fakeExtractor{pages: map[string][]extract.Page{}}
	uow := &fakeUow{repo: &fakeChunkRepo{}}
	svc := newTestDocumentService(uow, ex, &countingEmbedder{})

	files := []UploadFile{
		{Filename: "good.pdf", Data: []byte("x")},
		{Filename: "bad.txt", Data: []byte("x")},
	}

	_, err := svc.Upload(context.Background(), files)
	if !errors.Is(err, extract.ErrUnsupportedFileType) {
		t.Fatalf("Upload() error = %v, want ErrUnsupportedFileType", err)
	}
	if ex.calls != 0 {
		t.Errorf("extractor called %d times, want 0", ex.calls)
	}
	if uow.repo.deleteAllCalls != 0 {
		t.Errorf("store touched despite rejected batch")
	}
}

func TestUpload_ChunksAndVectorsPairedPositionally(t *testing.T) {
	ex := &fakeExtractor{pages: map[string][]extract.Page{
		"report.pdf": {
			{Text: "page one text", PageNumber: intPtr(1)},
			{Text: "page two has more text", PageNumber: intPtr(2)},
		},
	}}
	repo := &fakeChunkRepo{}
	uow := &fakeUow{repo: repo}
	svc := newTestDocumentService(uow, ex, &countingEmbedder{})

	res, err := svc.Upload(context.Background(), []UploadFile{{Filename: "report.pdf", Data: []byte("x")}})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if res.ChunksProcessed != len(repo.storedChunks) {
		t.Errorf("ChunksProcessed = %d, stored %d", res.ChunksProcessed, len(repo.storedChunks))
	}
	if len(repo.storedChunks) != len(repo.storedVectors) {
		t.Fatalf("chunks/vectors length mismatch: %d vs %d", len(repo.storedChunks), len(repo.storedVectors))
	}
	for i, c := range repo.storedChunks {
		want := float32(len(c.Text))
		if repo.storedVectors[i][0] != want {
			t.Errorf("vector %d = %v, want %v (chunk %q)", i, repo.storedVectors[i][0], want, c.Text)
		}
	}
	if !uow.began || !uow.committed {
		t.Errorf("expected transactional store, began=%v committed=%v", uow.began, uow.committed)
	}
}

func TestUpload_ChunkIndexRestartsPerPage(t *testing.T) {
	ex := &fakeExtractor{pages: map[string][]extract.Page{
		"doc.pdf": {
			{Text: "alpha", PageNumber: intPtr(1)},
			{Text: "beta", PageNumber: intPtr(2)},
		},
	}}
	repo := &fakeChunkRepo{}
	svc := newTestDocumentService(&fakeUow{repo: repo}, ex, &countingEmbedder{})

	if _, err := svc.Upload(context.Background(), []UploadFile{{Filename: "doc.pdf", Data: []byte("x")}}); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	for _, c := range repo.storedChunks {
		if c.ChunkIndex != 0 {
			t.Errorf("chunk on page %v has index %d, want 0 (single chunk per page)", c.PageNumber, c.ChunkIndex)
		}
		if c.Metadata.FileType != entity.FileTypePdf {
			t.Errorf("metadata file type = %q, want pdf", c.Metadata.FileType)
		}
	}
}

func TestUpload_EmbedFailureLeavesStoreUntouched(t *testing.T) {
	ex := &fakeExtractor{pages: map[string][]extract.Page{
		"doc.pdf": {{Text: "some text", PageNumber: intPtr(1)}},
	}}
	repo := &fakeChunkRepo{}
	uow := &fakeUow{repo: repo}
	svc := newTestDocumentService(uow, ex, &countingEmbedder{err: fmt.Errorf("quota exceeded")})

	_, err := svc.Upload(context.Background(), []UploadFile{{Filename: "doc.pdf", Data: []byte("x")}})
	if err == nil {
		t.Fatal("Upload() expected error, got nil")
	}
	if repo.deleteAllCalls != 0 || len(repo.storedChunks) != 0 {
		t.Errorf("store modified despite embedding failure")
	}
	if uow.began {
		t.Errorf("transaction opened before embeddings were ready")
	}
}

func TestUpload_NoTextContentStillClearsCorpus(t *testing.T) {
	ex := &fakeExtractor{pages: map[string][]extract.Page{"empty.docx": nil}}
	repo := &fakeChunkRepo{deleteAllRows: 7}
	uow := &fakeUow{repo: repo}
	svc := newTestDocumentService(uow, ex, &countingEmbedder{})

	res, err := svc.Upload(context.Background(), []UploadFile{{Filename: "empty.docx", Data: []byte("x")}})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if res.Message != "Files uploaded but no text content found" {
		t.Errorf("Message = %q", res.Message)
	}
	if res.ChunksProcessed != 0 {
		t.Errorf("ChunksProcessed = %d, want 0", res.ChunksProcessed)
	}
	if repo.deleteAllCalls != 1 {
		t.Errorf("DeleteAll calls = %d, want 1 (upload replaces the corpus)", repo.deleteAllCalls)
	}
	if !uow.committed {
		t.Error("transaction not committed")
	}
}

func TestClearAll(t *testing.T) {
	repo := &fakeChunkRepo{deleteAllRows: 42}
	svc := newTestDocumentService(&fakeUow{repo: repo}, &fakeExtractor{}, &countingEmbedder{})

	res, err := svc.ClearAll(context.Background())
	if err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if res.ChunksDeleted != 42 {
		t.Errorf("ChunksDeleted = %d, want 42", res.ChunksDeleted)
	}
	if res.Message != "Deleted 42 document chunks" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		repo     *fakeChunkRepo
		want     string
		loaded   bool
		dbOnline bool
	}{
		{"documents loaded", &fakeChunkRepo{countValue: 10}, "healthy", true, true},
		{"empty corpus", &fakeChunkRepo{countValue: 0}, "healthy", false, true},
		{"database down", &fakeChunkRepo{countErr: errors.New("conn refused")}, "unhealthy", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestDocumentService(&fakeUow{repo: tt.repo}, &fakeExtractor{}, &countingEmbedder{})
			res := svc.Health(context.Background())
			if res.Status != tt.want {
				t.Errorf("Status = %q, want %q", res.Status, tt.want)
			}
			if res.DocumentsLoaded != tt.loaded {
				t.Errorf("DocumentsLoaded = %v, want %v", res.DocumentsLoaded, tt.loaded)
			}
			if res.DatabaseConnected != tt.dbOnline {
				t.Errorf("DatabaseConnected = %v, want %v", res.DatabaseConnected, tt.dbOnline)
			}
		})
	}
}
