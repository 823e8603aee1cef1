package syncflow

import (
	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
)

// DefaultConstructors binds every concrete flow to deps.
func DefaultConstructors(deps Dependencies) ports.FlowConstructors {
	return ports.FlowConstructors{
		ZipFunction: func(sc ports.SyncContext, id domain.ResourceIdentifier, r domain.Resource) ports.SyncFlow {
			return NewZipFunctionFlow(sc, id, r, deps)
		},
		ImageFunction: func(sc ports.SyncContext, id domain.ResourceIdentifier, r domain.Resource) ports.SyncFlow {
			return NewImageFunctionFlow(sc, id, r, deps)
		},
		Layer: func(sc ports.SyncContext, id domain.ResourceIdentifier, r domain.Resource) ports.SyncFlow {
			return NewLayerFlow(sc, id, r, deps)
		},
		RestAPI: func(sc ports.SyncContext, id domain.ResourceIdentifier, r domain.Resource) ports.SyncFlow {
			return NewRestAPIFlow(sc, id, r, deps)
		},
		HTTPAPI: func(sc ports.SyncContext, id domain.ResourceIdentifier, r domain.Resource) ports.SyncFlow {
			return NewHTTPAPIFlow(sc, id, r, deps)
		},
	}
}
