package entity

import (
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypePdf  FileType = "pdf"
	FileTypeDocx FileType = "docx"
)

// ChunkMetadata travels with every chunk into the vector store.
type ChunkMetadata struct {
	FilePath string   `json:"file_path"`
	FileType FileType `json:"file_type"`
}

// DocumentChunk is a bounded segment of source document text with its
// provenance. Immutable once created; ChunkIndex is 0-based and contiguous
// within a (SourceFile, PageNumber) group.
type DocumentChunk struct {
	Id         uuid.UUID
	Text       string
	SourceFile string
	FolderPath *string
	PageNumber *int
	ChunkIndex int
	Metadata   ChunkMetadata
	CreatedAt  time.Time
}

// ScoredChunk pairs a retrieved chunk with its similarity score, descending
// rank order is owned by the store.
type ScoredChunk struct {
	Chunk      *DocumentChunk
	Similarity float64
}
