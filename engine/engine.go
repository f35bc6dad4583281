// Package engine wires the Registry, preprocessor Chain, Constructor Pool
// and a Construction Strategy into the single facade a caller actually
// reaches for: register modules, finalize, instantiate by config IRI.
//
// It follows a functional-options config pattern (one Option type, an
// atomic state flag gating registration after Finalize) rather than
// exposing the lower-level packages directly, the same way a rule engine
// wraps its registry/parser/logger trio behind one constructor.
package engine

import (
	"context"
	"fmt"

	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/logging"
	"github.com/jeswr/components-go/pool"
	"github.com/jeswr/components-go/preprocess"
	"github.com/jeswr/components-go/registry"
	"github.com/jeswr/components-go/strategy"
)

// Callbacks are optional lifecycle hooks: each fires synchronously from the
// call that causes it, never from a background goroutine.
type Callbacks struct {
	// OnRegistered fires once per successful RegisterModule call.
	OnRegistered func(moduleIRI string)
	// OnFinalized fires once, when Finalize first succeeds.
	OnFinalized func()
	// OnInstantiated fires once per successful Instantiate call, after the
	// value is built but before it is returned to the caller.
	OnInstantiated func(configIRI string, value any)
}

// Engine is the top-level facade over the instantiation pipeline.
type Engine struct {
	graph     *graph.Graph
	registry  *registry.Registry
	chain     *preprocess.Chain
	strategy  strategy.ConstructionStrategy
	pool      *pool.Pool
	logger    logging.Logger
	callbacks Callbacks
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the default stderr logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithChain overrides the default preprocessor chain.
func WithChain(chain *preprocess.Chain) Option {
	return func(e *Engine) { e.chain = chain }
}

// WithCallbacks attaches lifecycle hooks.
func WithCallbacks(cb Callbacks) Option {
	return func(e *Engine) { e.callbacks = cb }
}

// New builds an Engine over its own fresh Graph and Registry, using strat to
// construct values. strat is required; everything else defaults.
func New(strat strategy.ConstructionStrategy, opts ...Option) *Engine {
	g := graph.New()
	e := &Engine{
		graph:    g,
		registry: registry.New(g),
		chain:    preprocess.Default(),
		strategy: strat,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.pool = pool.New(e.graph, e.registry, e.strategy, pool.WithChain(e.chain))
	return e
}

// Graph exposes the backing Resource Graph so a caller can build module and
// config resources directly (the moduledecl package, or a test, does this).
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// Registry exposes the component Registry for direct registration outside
// of RegisterModule/RegisterModuleFromStream (rarely needed).
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// RegisterModule registers mod and its components. Fails once Finalize has
// run (apperrors.ErrRegistryFrozen).
func (e *Engine) RegisterModule(mod graph.Ref) error {
	if err := e.registry.RegisterModule(mod); err != nil {
		return err
	}
	if e.callbacks.OnRegistered != nil {
		e.callbacks.OnRegistered(mod.IRI())
	}
	return nil
}

// RegisterModuleFromStream parses triples and registers every Module they
// describe.
func (e *Engine) RegisterModuleFromStream(ctx context.Context, triples []graph.Triple) error {
	return e.registry.RegisterModuleFromStream(ctx, triples)
}

// Finalize runs parameter inheritance across every registered component and
// freezes the registry against further registration.
func (e *Engine) Finalize() error {
	if e.registry.Finalized() {
		return nil
	}
	if err := e.registry.Finalize(); err != nil {
		return err
	}
	if e.callbacks.OnFinalized != nil {
		e.callbacks.OnFinalized()
	}
	return nil
}

// Instantiate finalizes the registry if needed and builds configIRI's value,
// with variables bound for any Variable-typed argument it or its nested
// configs reference. opts forwards to pool.Instantiate — pool.AsFunction()
// to get a deferred factory back, pool.WithSerializations() to get source
// text instead of a live value from a strategy that supports it.
func (e *Engine) Instantiate(ctx context.Context, configIRI string, variables map[string]any, opts ...pool.InstantiateOption) (any, error) {
	if err := e.Finalize(); err != nil {
		return nil, err
	}
	value, err := e.pool.Instantiate(ctx, configIRI, variables, opts...)
	if err != nil {
		return nil, err
	}
	if e.callbacks.OnInstantiated != nil {
		e.callbacks.OnInstantiated(configIRI, value)
	}
	return value, nil
}

// InstantiateManually builds a value directly from a component IRI and a
// flat parameter map, bypassing the need for a pre-declared config resource
// in the graph: a synthetic config is assembled as a blank node with one
// property per map entry, keyed by the component's own parameter IRIs
// matched by each parameter's declared "name", then run through the normal
// pipeline.
func (e *Engine) InstantiateManually(ctx context.Context, componentIRI string, params map[string]any, variables map[string]any, opts ...pool.InstantiateOption) (any, error) {
	if err := e.Finalize(); err != nil {
		return nil, err
	}
	comp, err := e.registry.MustComponent(componentIRI)
	if err != nil {
		return nil, err
	}

	config := e.graph.BlankNode()
	config.SetProperty(graph.PredType, comp)
	config.SetProperty(graph.PredRequireName, e.graph.Literal(componentIRI, ""))

	for _, param := range comp.Properties(graph.PredParameter) {
		name, ok := param.Property(graph.PredName)
		if !ok {
			continue
		}
		v, ok := params[name.Value()]
		if !ok {
			continue
		}
		config.SetProperty(param.IRI(), e.graph.Literal(toLexical(v), ""))
	}

	value, err := e.pool.Instantiate(ctx, config.IRI(), variables, opts...)
	if err != nil {
		return nil, err
	}
	if e.callbacks.OnInstantiated != nil {
		e.callbacks.OnInstantiated(config.IRI(), value)
	}
	return value, nil
}

func toLexical(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
