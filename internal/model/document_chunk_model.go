package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Text           string          `gorm:"type:text;not null"`
	SourceFile     string          `gorm:"type:varchar(512);not null;index"`
	FolderPath     *string         `gorm:"type:varchar(1024)"`
	PageNumber     *int
	ChunkIndex     int             `gorm:"default:0"` // 0-based order within (source_file, page_number)
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(1536)"` // OpenAI text-embedding-3-small uses 1536 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
