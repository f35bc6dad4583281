// Package registry implements the Registry / Module State component: the
// mutable-then-frozen holder of registered component definitions, reachable
// by IRI, with module back-references wired in on registration.
//
// The mutable/frozen split follows a plain mutex-guarded map during the
// registration phase, after which Finalize runs parameter inheritance once
// and flips an atomic flag that every subsequent mutating call checks.
package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/graph"

	"github.com/hashicorp/go-multierror"
)

// recognisedComponentTypes are the only rdf:type values a component
// definition may declare.
var recognisedComponentTypes = map[string]bool{
	graph.TypeAbstractClass:     true,
	graph.TypeClass:             true,
	graph.TypeComponentInstance: true,
}

// Categorizer is an optional interface a caller can attach metadata through
// (not on the graph.Ref itself, which carries no Go methods beyond its
// accessors) to group components for visual tooling. Purely additive:
// nothing in the pipeline requires it.
type Categorizer interface {
	Category(component graph.Ref) string
}

// Describer is the Categorizer's sibling for human-readable descriptions,
// mirroring types.DescGetter.
type Describer interface {
	Describe(component graph.Ref) string
}

// Registry holds registered component definitions and their owning
// modules. It is safe for concurrent registration up until Finalize, and
// safe for concurrent reads (Component, ResolveComponents) forever after.
type Registry struct {
	g *graph.Graph

	mu         sync.RWMutex
	components map[string]graph.Ref // component IRI -> definition
	modules    map[string]graph.Ref // module IRI -> module resource

	finalized atomic.Bool
}

// New returns an empty Registry bound to g. All component/config resources
// ever passed to it must come from g.
func New(g *graph.Graph) *Registry {
	return &Registry{
		g:          g,
		components: make(map[string]graph.Ref),
		modules:    make(map[string]graph.Ref),
	}
}

// Graph returns the Graph this registry's resources live in.
func (r *Registry) Graph() *graph.Graph {
	return r.g
}

// RegisterModule registers mod and every component it declares. Each
// component gets its "module" back-reference set to mod and is
// inserted under its own IRI. Fails with ErrRegistryFrozen after Finalize,
// or ErrInvalidComponent if a declared component's rdf:type does not
// resolve to one of AbstractClass/Class/ComponentInstance.
func (r *Registry) RegisterModule(mod graph.Ref) error {
	if r.finalized.Load() {
		return apperrors.ErrRegistryFrozen
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finalized.Load() {
		return apperrors.ErrRegistryFrozen
	}

	components := mod.Properties(graph.PredComponents)
	var errs *multierror.Error
	for _, comp := range components {
		if !isRecognisedComponent(comp) {
			errs = multierror.Append(errs, apperrors.NewComponentError(comp.IRI(), apperrors.ErrInvalidComponent))
			continue
		}
		comp.SetProperty(graph.PredModule, mod)
		r.components[comp.IRI()] = comp
	}
	r.modules[mod.IRI()] = mod
	return errs.ErrorOrNil()
}

func isRecognisedComponent(comp graph.Ref) bool {
	for _, t := range comp.Types() {
		if recognisedComponentTypes[t.Value()] {
			return true
		}
	}
	return false
}

// RegisterModuleFromStream parses triples via loader and registers every
// resource typed Module.
func (r *Registry) RegisterModuleFromStream(ctx context.Context, triples []graph.Triple) error {
	loader := graph.NewLoader(r.g)
	if err := loader.Import(ctx, triples); err != nil {
		return err
	}
	var errs *multierror.Error
	for _, res := range loader.Resources() {
		if res.IsA(graph.TypeModule) {
			if err := r.RegisterModule(res); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}
	return errs.ErrorOrNil()
}

// Finalize runs parameter and constructor-argument inheritance across every
// registered component, then freezes the registry: every subsequent
// RegisterModule/RegisterModuleFromStream call fails with ErrRegistryFrozen
// and the component map is left untouched.
func (r *Registry) Finalize() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finalized.Load() {
		return nil
	}

	var errs *multierror.Error
	for _, comp := range r.components {
		if err := inheritParameters(comp); err != nil {
			errs = multierror.Append(errs, apperrors.NewComponentError(comp.IRI(), err))
		}
		if err := inheritConstructorArgumentFields(comp); err != nil {
			errs = multierror.Append(errs, apperrors.NewComponentError(comp.IRI(), err))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	r.finalized.Store(true)
	return nil
}

// EnsureFinalized calls Finalize if it has not already run, making
// finalisation idempotent from a caller's point of view without re-running
// inheritance on every call.
func (r *Registry) EnsureFinalized() error {
	if r.finalized.Load() {
		return nil
	}
	return r.Finalize()
}

// Finalized reports whether Finalize has completed successfully.
func (r *Registry) Finalized() bool {
	return r.finalized.Load()
}

// Component looks up a registered component definition by IRI.
func (r *Registry) Component(iri string) (graph.Ref, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[iri]
	return c, ok
}

// MustComponent is Component but returning ErrUnknownComponent, the shape
// a manual-instantiation caller needs.
func (r *Registry) MustComponent(iri string) (graph.Ref, error) {
	c, ok := r.Component(iri)
	if !ok {
		return graph.Ref{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownComponent, iri)
	}
	return c, nil
}

// ResolveComponents returns every registered component among typeRefs, used
// to test a config's rdf:type list against the registry — the
// ComponentMapped/ComponentUnmapped triggers, and the
// AmbiguousComponentTypes check.
func (r *Registry) ResolveComponents(typeRefs []graph.Ref) []graph.Ref {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []graph.Ref
	for _, t := range typeRefs {
		if c, ok := r.components[t.IRI()]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Module looks up a registered module by IRI.
func (r *Registry) Module(iri string) (graph.Ref, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[iri]
	return m, ok
}
