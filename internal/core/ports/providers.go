package ports

import (
	"context"

	"github.com/olusolaa/stack-sync/internal/core/domain"
)

//go:generate mockery --name PhysicalIDProvider --output ./mocks --outpkg mocks --case underscore
type PhysicalIDProvider interface {
	// GetPhysicalIDMapping returns logical to physical ids for every stack,
	// keyed by ResourceIdentifier.String().
	GetPhysicalIDMapping(ctx context.Context, deploy domain.DeployContext, stacks []domain.Stack) (domain.PhysicalIDMapping, error)
}

//go:generate mockery --name TemplateProvider --output ./mocks --outpkg mocks --case underscore
type TemplateProvider interface {
	Type() string
	LoadStacks(ctx context.Context) ([]domain.Stack, error)
}
