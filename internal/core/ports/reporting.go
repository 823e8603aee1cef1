package ports

import (
	"context"

	"github.com/olusolaa/stack-sync/internal/core/domain"
)

//go:generate mockery --name Reporter --output ./mocks --outpkg mocks --case underscore
type Reporter interface {
	Report(ctx context.Context, results []domain.SyncResult) error
}
