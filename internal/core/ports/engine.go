package ports

import (
	"context"

	"github.com/olusolaa/stack-sync/internal/core/domain"
)

//go:generate mockery --name SyncFlowFactory --output ./mocks --outpkg mocks --case underscore
type SyncFlowFactory interface {
	LoadPhysicalIDMapping(ctx context.Context) error
	CreateSyncFlow(id domain.ResourceIdentifier) SyncFlow
}

//go:generate mockery --name SyncExecutor --output ./mocks --outpkg mocks --case underscore
type SyncExecutor interface {
	Execute(ctx context.Context, flows []SyncFlow) ([]domain.SyncResult, error)
}
