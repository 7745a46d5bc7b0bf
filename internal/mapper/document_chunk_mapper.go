package mapper

import (
	"encoding/json"

	"github.com/CRautomation-ai/showcase-agent/internal/entity"
	"github.com/CRautomation-ai/showcase-agent/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	var meta entity.ChunkMetadata
	if len(c.Metadata) > 0 {
		// Metadata we wrote ourselves; an unmarshal failure just leaves the
		// struct zeroed rather than failing the read path.
		_ = json.Unmarshal(c.Metadata, &meta)
	}

	return &entity.DocumentChunk{
		Id:         c.Id,
		Text:       c.Text,
		SourceFile: c.SourceFile,
		FolderPath: c.FolderPath,
		PageNumber: c.PageNumber,
		ChunkIndex: c.ChunkIndex,
		Metadata:   meta,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk, vector []float32) (*model.DocumentChunk, error) {
	if c == nil {
		return nil, nil
	}

	metaJson, err := json.Marshal(c.Metadata)
	if err != nil {
		return nil, err
	}

	return &model.DocumentChunk{
		Id:             c.Id,
		Text:           c.Text,
		SourceFile:     c.SourceFile,
		FolderPath:     c.FolderPath,
		PageNumber:     c.PageNumber,
		ChunkIndex:     c.ChunkIndex,
		Metadata:       datatypes.JSON(metaJson),
		EmbeddingValue: pgvector.NewVector(vector),
		CreatedAt:      c.CreatedAt,
	}, nil
}
