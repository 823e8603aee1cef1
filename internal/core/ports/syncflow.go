package ports

import (
	"context"

	"github.com/olusolaa/stack-sync/internal/core/domain"
)

//go:generate mockery --name SyncFlow --output ./mocks --outpkg mocks --case underscore

// SyncFlow pushes one local change to one deployed resource.
type SyncFlow interface {
	Name() string
	Identifier() domain.ResourceIdentifier
	Kind() domain.ResourceKind
	Execute(ctx context.Context) error
}

// SyncContext is what a flow gets from the factory that built it.
type SyncContext interface {
	BuildContext() domain.BuildContext
	DeployContext() domain.DeployContext
	Stacks() []domain.Stack
	// PhysicalID reads the mapping loaded by the factory; it never triggers a load.
	PhysicalID(id domain.ResourceIdentifier) (string, bool)
	Logger() Logger
}

// SyncFlowConstructor builds one concrete flow. It must return a nil
// interface, not a typed nil, when it has nothing to build.
type SyncFlowConstructor func(sc SyncContext, id domain.ResourceIdentifier, resource domain.Resource) SyncFlow

// FlowConstructors is the set of concrete flows the factory can hand out.
type FlowConstructors struct {
	ZipFunction   SyncFlowConstructor
	ImageFunction SyncFlowConstructor
	Layer         SyncFlowConstructor
	RestAPI       SyncFlowConstructor
	HTTPAPI       SyncFlowConstructor
}
