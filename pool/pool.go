// Package pool implements the Constructor Pool: it memoizes construction by
// config IRI, short-circuits self-referential cycles via a
// per-call blacklist, and is the only caller of both the preprocessor chain
// and the config constructor — neither of those packages know about
// memoization or cycles, this is where the two concerns meet.
package pool

import (
	"context"
	"fmt"
	"sync"

	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/construct"
	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/metrics"
	"github.com/jeswr/components-go/preprocess"
	"github.com/jeswr/components-go/registry"
	"github.com/jeswr/components-go/strategy"
)

// future is a cache slot in one of four states: absent (no entry in the
// map), sentinel/pending (entry present, done not yet closed — installed
// synchronously before any recursive work starts, so a second caller
// arriving while construction is in flight waits instead of re-entering),
// resolved (done closed, err nil), rejected (done closed, err set).
type future struct {
	done  chan struct{}
	value any
	err   error
}

// Pool resolves config IRIs to constructed values.
type Pool struct {
	g     *graph.Graph
	reg   *registry.Registry
	chain *preprocess.Chain
	strat strategy.ConstructionStrategy

	mu    sync.Mutex
	cache map[string]*future
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithChain overrides the default preprocessor chain (preprocess.Default()).
func WithChain(chain *preprocess.Chain) Option {
	return func(p *Pool) { p.chain = chain }
}

// New builds a Pool over g's resources, resolving component types against
// reg and handing resolved arguments to strat.
func New(g *graph.Graph, reg *registry.Registry, strat strategy.ConstructionStrategy, opts ...Option) *Pool {
	p := &Pool{
		g:     g,
		reg:   reg,
		chain: preprocess.Default(),
		strat: strat,
		cache: make(map[string]*future),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// InstantiateOption configures the top-level Settings an Instantiate call
// starts from.
type InstantiateOption func(*strategy.Settings)

// AsFunction requests the top-level result back as a deferred factory
// (func() (any, error)) instead of an eagerly-constructed value, regardless
// of whether the config itself is marked requireNoConstructor. It never
// affects how nested config references within the tree are constructed —
// only the outermost call's result is wrapped.
func AsFunction() InstantiateOption {
	return func(s *strategy.Settings) { s.AsFunction = true }
}

// WithSerializations requests source text instead of a constructed value,
// for every node of the tree rooted at configIRI. Only a strategy with a
// notion of source (strategy/jscode) can honour this; others reject it.
func WithSerializations() InstantiateOption {
	return func(s *strategy.Settings) { s.Serializations = true }
}

// Instantiate resolves configIRI to a constructed value, starting with an
// empty blacklist and the given variable bindings. It is the top-level
// entry point a caller (the engine facade, or a test) uses; Resolve is the
// same operation keyed for reuse as a construct.NestedResolver.
func (p *Pool) Instantiate(ctx context.Context, configIRI string, variables map[string]any, opts ...InstantiateOption) (any, error) {
	settings := &strategy.Settings{
		Blacklist: map[string]bool{},
		Variables: variables,
	}
	for _, opt := range opts {
		opt(settings)
	}

	// AsFunction at the top level is a caller-side request, wrapped here
	// rather than threaded into build's config-driven computation, so it
	// never leaks into how nested references are constructed.
	wantFunction := settings.AsFunction
	settings.AsFunction = false

	value, err := p.Resolve(ctx, configIRI, settings)
	if err != nil {
		return nil, err
	}
	if wantFunction {
		return func() (any, error) { return value, nil }, nil
	}
	return value, nil
}

// Resolve implements construct.NestedResolver: it is called both as the
// top-level entry point and recursively whenever the constructor encounters
// a nested config reference as an argument value.
func (p *Pool) Resolve(ctx context.Context, configIRI string, settings *strategy.Settings) (any, error) {
	if settings.Blacklist[configIRI] {
		metrics.CycleShortCircuit()
		return p.strat.CreateUndefined(ctx)
	}

	if config, ok := p.g.Lookup(configIRI); ok && config.Kind() == graph.VariableTerm {
		return p.strat.ResolveVariable(ctx, config.Value(), settings)
	}

	p.mu.Lock()
	if f, ok := p.cache[configIRI]; ok {
		p.mu.Unlock()
		metrics.CacheHit()
		<-f.done
		return f.value, f.err
	}
	f := &future{done: make(chan struct{})}
	p.cache[configIRI] = f
	p.mu.Unlock()

	stop := metrics.StartInstantiate()
	defer stop()

	value, err := p.build(ctx, configIRI, settings)
	f.value, f.err = value, err
	close(f.done)
	return value, err
}

func (p *Pool) build(ctx context.Context, configIRI string, settings *strategy.Settings) (any, error) {
	config, ok := p.g.Lookup(configIRI)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownComponent, configIRI)
	}

	raw, err := p.chain.Canonicalize(p.reg, config)
	if err != nil {
		return nil, err
	}

	childSettings := &strategy.Settings{
		Blacklist:      extendBlacklist(settings.Blacklist, configIRI),
		Variables:      settings.Variables,
		AsFunction:     requiresNoConstructor(raw),
		Serializations: settings.Serializations,
	}

	args, err := construct.Arguments(ctx, raw, p.strat, p, childSettings)
	if err != nil {
		return nil, err
	}

	return p.strat.CreateInstance(ctx, constructorIdentity(raw), args, childSettings)
}

// constructorIdentity combines requireName with requireElement (e.g. a
// module "n3" plus element "Lexer") into the single identity CreateInstance
// expects.
func constructorIdentity(raw graph.Ref) string {
	name, _ := raw.Property(graph.PredRequireName)
	id := name.Value()
	if elem, ok := raw.Property(graph.PredRequireElement); ok {
		id += "#" + elem.Value()
	}
	return id
}

func requiresNoConstructor(raw graph.Ref) bool {
	v, ok := raw.Property(graph.PredRequireNoConstructor)
	return ok && v.Value() == "true"
}

func extendBlacklist(bl map[string]bool, iri string) map[string]bool {
	out := make(map[string]bool, len(bl)+1)
	for k := range bl {
		out[k] = true
	}
	out[iri] = true
	return out
}
