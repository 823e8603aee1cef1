package service

import (
	"context"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

// SyncFlowFactory picks the sync flow for a resource and hands it the build
// and deploy contexts, the stacks and the physical id mapping.
//
// The mapping is only filled by LoadPhysicalIDMapping. Call it once before
// executing any flow that needs to reach the deployed resource.
type SyncFlowFactory struct {
	buildContext       domain.BuildContext
	deployContext      domain.DeployContext
	stacks             []domain.Stack
	physicalIDProvider ports.PhysicalIDProvider
	constructors       ports.FlowConstructors
	registry           *GeneratorRegistry
	logger             ports.Logger

	physicalIDMapping domain.PhysicalIDMapping

	lookupResource func(stacks []domain.Stack, id domain.ResourceIdentifier) (domain.Resource, bool)
	generatorFor   func(resourceType string) GeneratorFunc
}

type FactoryOption func(*SyncFlowFactory)

func WithGeneratorRegistry(registry *GeneratorRegistry) FactoryOption {
	return func(f *SyncFlowFactory) {
		if registry != nil {
			f.registry = registry
		}
	}
}

func WithResourceLookup(lookup func(stacks []domain.Stack, id domain.ResourceIdentifier) (domain.Resource, bool)) FactoryOption {
	return func(f *SyncFlowFactory) {
		if lookup != nil {
			f.lookupResource = lookup
		}
	}
}

func NewSyncFlowFactory(
	buildContext domain.BuildContext,
	deployContext domain.DeployContext,
	stacks []domain.Stack,
	physicalIDProvider ports.PhysicalIDProvider,
	constructors ports.FlowConstructors,
	logger ports.Logger,
	opts ...FactoryOption,
) (*SyncFlowFactory, error) {
	if physicalIDProvider == nil {
		return nil, errors.New(errors.CodeInternal, "physical id provider cannot be nil")
	}
	if logger == nil {
		return nil, errors.New(errors.CodeInternal, "logger cannot be nil for sync flow factory")
	}

	f := &SyncFlowFactory{
		buildContext:       buildContext,
		deployContext:      deployContext,
		stacks:             stacks,
		physicalIDProvider: physicalIDProvider,
		constructors:       constructors,
		registry:           DefaultGeneratorRegistry(),
		logger:             logger,
		physicalIDMapping:  domain.PhysicalIDMapping{},
		lookupResource:     domain.GetResourceByID,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.generatorFor = f.registry.ForType

	return f, nil
}

// LoadPhysicalIDMapping fetches the logical to physical id mapping of the
// deployed stacks and replaces the stored one. Provider errors are returned
// as is and leave the previous mapping in place.
func (f *SyncFlowFactory) LoadPhysicalIDMapping(ctx context.Context) error {
	mapping, err := f.physicalIDProvider.GetPhysicalIDMapping(ctx, f.deployContext, f.stacks)
	if err != nil {
		return err
	}
	if mapping == nil {
		mapping = domain.PhysicalIDMapping{}
	}
	f.physicalIDMapping = mapping
	f.logger.Debugf(ctx, "Loaded %d physical ids for stack %s", len(mapping), f.deployContext.StackName)
	return nil
}

// CreateSyncFlow returns the flow for the resource, or nil when the resource
// is unknown or has no supported sync strategy.
func (f *SyncFlowFactory) CreateSyncFlow(id domain.ResourceIdentifier) ports.SyncFlow {
	resource, found := f.lookupResource(f.stacks, id)
	if !found {
		f.logger.Debugf(context.Background(), "Resource %s not found in any stack", id)
		return nil
	}

	generator := f.generatorFor(resource.Type)
	if generator == nil {
		f.logger.Debugf(context.Background(), "No sync flow for %s of type %s", id, resource.Type)
		return nil
	}
	return generator(f, id, resource)
}

func (f *SyncFlowFactory) createLambdaFlow(id domain.ResourceIdentifier, resource domain.Resource) ports.SyncFlow {
	switch resource.PackageType() {
	case domain.PackageTypeZip:
		return f.construct(f.constructors.ZipFunction, id, resource)
	case domain.PackageTypeImage:
		return f.construct(f.constructors.ImageFunction, id, resource)
	default:
		return nil
	}
}

func (f *SyncFlowFactory) createLayerFlow(id domain.ResourceIdentifier, resource domain.Resource) ports.SyncFlow {
	return f.construct(f.constructors.Layer, id, resource)
}

func (f *SyncFlowFactory) createRestAPIFlow(id domain.ResourceIdentifier, resource domain.Resource) ports.SyncFlow {
	return f.construct(f.constructors.RestAPI, id, resource)
}

func (f *SyncFlowFactory) createHTTPAPIFlow(id domain.ResourceIdentifier, resource domain.Resource) ports.SyncFlow {
	return f.construct(f.constructors.HTTPAPI, id, resource)
}

func (f *SyncFlowFactory) construct(ctor ports.SyncFlowConstructor, id domain.ResourceIdentifier, resource domain.Resource) ports.SyncFlow {
	if ctor == nil {
		return nil
	}
	return ctor(f, id, resource)
}

func (f *SyncFlowFactory) BuildContext() domain.BuildContext   { return f.buildContext }
func (f *SyncFlowFactory) DeployContext() domain.DeployContext { return f.deployContext }
func (f *SyncFlowFactory) Stacks() []domain.Stack              { return f.stacks }
func (f *SyncFlowFactory) Logger() ports.Logger                { return f.logger }

func (f *SyncFlowFactory) PhysicalID(id domain.ResourceIdentifier) (string, bool) {
	physicalID, ok := f.physicalIDMapping[id.String()]
	return physicalID, ok
}

// PhysicalIDMapping returns the mapping loaded by LoadPhysicalIDMapping.
func (f *SyncFlowFactory) PhysicalIDMapping() domain.PhysicalIDMapping {
	return f.physicalIDMapping
}

// SyncableResources lists every resource in every stack that has a
// generator, in stack then declaration order.
func (f *SyncFlowFactory) SyncableResources() []domain.ResourceIdentifier {
	var ids []domain.ResourceIdentifier
	for _, stack := range f.stacks {
		for _, logicalID := range stack.OrderedResourceIDs() {
			if f.generatorFor(stack.Resources[logicalID].Type) == nil {
				continue
			}
			ids = append(ids, stack.Identifier(logicalID))
		}
	}
	return ids
}

var (
	_ ports.SyncContext     = (*SyncFlowFactory)(nil)
	_ ports.SyncFlowFactory = (*SyncFlowFactory)(nil)
)
