package unitofwork

import (
	"context"

	"github.com/CRautomation-ai/showcase-agent/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentChunkRepository() contract.DocumentChunkRepository
}
