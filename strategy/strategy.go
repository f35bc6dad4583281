// Package strategy defines the Construction Strategy boundary: the
// constructor pool and config constructor resolve a canonical config
// into a strategy-neutral argument tree and hand it to a ConstructionStrategy
// to actually produce a value. The pipeline in this module never imports a
// concrete strategy; strategy/runtime and strategy/jscode are separate,
// pluggable implementations.
package strategy

import "context"

// Settings carries the per-call state a strategy needs that isn't part of
// the argument tree itself: the cycle-detection blacklist, named variable
// bindings in scope, whether the caller wants a lazily-invoked factory back
// instead of an eagerly-constructed instance, and whether the caller wants
// source text back instead of a live value at all.
type Settings struct {
	// Blacklist holds the config IRIs currently being constructed on the
	// current call stack. A strategy never needs to read this directly —
	// the Pool consults it before ever calling into a strategy — but it is
	// threaded through Settings so each nested Resolve receives the
	// blacklist of its enclosing call (the Pool hands every level its own
	// extended copy).
	Blacklist map[string]bool

	// Variables maps a variable resource's lookup name to the value bound
	// to it in the caller's scope.
	Variables map[string]any

	// AsFunction requests a deferred factory (func() (any, error)) instead
	// of an eagerly-constructed value, for configs marked
	// requireNoConstructor or referenced purely for later invocation.
	AsFunction bool

	// Serializations requests source text instead of a constructed value —
	// meaningful only to a strategy that has a notion of "source" at all
	// (strategy/jscode renders a JS call expression; strategy/runtime has no
	// such representation and rejects the request).
	Serializations bool
}

// ConstructionStrategy is the pluggable back end left implementation-defined
// by design. Every method receives ctx so a long-running
// strategy (e.g. one that shells out or compiles generated source) can be
// cancelled; none of them mutate the Resource Graph.
type ConstructionStrategy interface {
	// CreateUndefined returns the value for an argument position that
	// resolved to no value at all (graph.Undefined()).
	CreateUndefined(ctx context.Context) (any, error)

	// ResolveVariable looks up name in settings.Variables, returning
	// apperrors.ErrUndefinedVariable (wrapped) if it is unbound.
	ResolveVariable(ctx context.Context, name string, settings *Settings) (any, error)

	// CreatePrimitive converts a Literal's lexical form and datatype into a
	// strategy-native scalar value.
	CreatePrimitive(ctx context.Context, value, datatype string) (any, error)

	// CreateArray assembles previously-resolved element values into a
	// strategy-native ordered collection.
	CreateArray(ctx context.Context, items []any) (any, error)

	// CreateHash assembles previously-resolved field values, keyed by
	// their (already-validated) literal key, into a strategy-native
	// keyed collection.
	CreateHash(ctx context.Context, fields map[string]any) (any, error)

	// CreateInstance builds the component instance named by iri from its
	// resolved, ordered constructor arguments.
	CreateInstance(ctx context.Context, iri string, args []any, settings *Settings) (any, error)
}
