package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/CRautomation-ai/showcase-agent/internal/entity"
	"github.com/CRautomation-ai/showcase-agent/internal/model"
	"github.com/CRautomation-ai/showcase-agent/internal/repository/specification"
	"github.com/CRautomation-ai/showcase-agent/internal/repository/unitofwork"
	"github.com/CRautomation-ai/showcase-agent/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	require.NoError(t, database.EnsureVectorExtension(gormDB))
	require.NoError(t, gormDB.AutoMigrate(&model.DocumentChunk{}))

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())
	assert.NotNil(t, uow.DocumentChunkRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Check Document Chunk Repository", func(t *testing.T) {
		count, err := uow.DocumentChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentChunk count: %d", count)
	})

	t.Run("Insert Search And Replace Round Trip", func(t *testing.T) {
		ctx := context.Background()
		page := 1
		chunks := []*entity.DocumentChunk{
			{
				Id:         uuid.New(),
				Text:       "integration test chunk about vector search",
				SourceFile: "integration-test.pdf",
				PageNumber: &page,
				ChunkIndex: 0,
				Metadata:   entity.ChunkMetadata{FilePath: "integration-test.pdf", FileType: entity.FileTypePdf},
			},
		}
		vector := make([]float32, 1536)
		vector[0] = 1 // unit vector along the first axis

		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		_, err := uow.DocumentChunkRepository().DeleteAll(ctx)
		require.NoError(t, err)
		require.NoError(t, uow.DocumentChunkRepository().CreateBulk(ctx, chunks, [][]float32{vector}))
		require.NoError(t, uow.Commit())

		reader := uowFactory.NewUnitOfWork(ctx)
		count, err := reader.DocumentChunkRepository().Count(ctx,
			specification.BySourceFile{SourceFile: "integration-test.pdf"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		scored, err := reader.DocumentChunkRepository().SearchSimilarWithScore(ctx, vector, 5)
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Equal(t, "integration-test.pdf", scored[0].Chunk.SourceFile)
		assert.InDelta(t, 1.0, scored[0].Similarity, 0.001, "identical vectors should have similarity 1")

		deleted, err := reader.DocumentChunkRepository().DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
	})
}
