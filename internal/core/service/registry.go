package service

import (
	"fmt"
	"sync"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

// GeneratorFunc builds the flow for one resource. A nil return means the
// resource has no supported sync strategy.
type GeneratorFunc func(f *SyncFlowFactory, id domain.ResourceIdentifier, resource domain.Resource) ports.SyncFlow

// GeneratorRegistry maps resource kinds to the factory method that handles them.
type GeneratorRegistry struct {
	mu         sync.RWMutex
	generators map[domain.ResourceKind]GeneratorFunc
}

func NewGeneratorRegistry() *GeneratorRegistry {
	return &GeneratorRegistry{
		generators: make(map[domain.ResourceKind]GeneratorFunc),
	}
}

// DefaultGeneratorRegistry wires every syncable kind to its factory method.
func DefaultGeneratorRegistry() *GeneratorRegistry {
	r := NewGeneratorRegistry()
	// Registration of distinct static kinds cannot collide.
	_ = r.Register(domain.KindFunction, (*SyncFlowFactory).createLambdaFlow)
	_ = r.Register(domain.KindLayerVersion, (*SyncFlowFactory).createLayerFlow)
	_ = r.Register(domain.KindRestAPI, (*SyncFlowFactory).createRestAPIFlow)
	_ = r.Register(domain.KindHTTPAPI, (*SyncFlowFactory).createHTTPAPIFlow)
	return r
}

func (r *GeneratorRegistry) Register(kind domain.ResourceKind, generator GeneratorFunc) error {
	if generator == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil sync flow generator")
	}
	if kind == "" {
		return errors.New(errors.CodeInternal, "sync flow generator kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[kind]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("sync flow generator for kind '%s' already registered", kind))
	}
	r.generators[kind] = generator
	return nil
}

func (r *GeneratorRegistry) Get(kind domain.ResourceKind) (GeneratorFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	generator, ok := r.generators[kind]
	return generator, ok
}

// ForType resolves a template resource type through its kind.
func (r *GeneratorRegistry) ForType(resourceType string) GeneratorFunc {
	kind, ok := domain.KindForType(resourceType)
	if !ok {
		return nil
	}
	generator, _ := r.Get(kind)
	return generator
}

// Kinds lists the kinds with a registered generator.
func (r *GeneratorRegistry) Kinds() []domain.ResourceKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.ResourceKind, 0, len(r.generators))
	for k := range r.generators {
		kinds = append(kinds, k)
	}
	return kinds
}
