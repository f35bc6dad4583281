// Package construct implements the Config Constructor: it walks a canonical
// config's resolved argument tree and turns every value shape it can find —
// Literal, Variable, nested config reference, object-with-fields,
// object-with-elements, RDF list — into the strategy-neutral value a
// Construction Strategy understands.
//
// This package never memoizes and never detects cycles; that is the
// Constructor Pool's job. A nested config reference is handed to a
// NestedResolver instead of being resolved in place, so the Pool can
// interpose its blacklist and cache around every nested call without
// construct needing to import it back (which would be a cycle).
package construct

import (
	"context"
	"fmt"

	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/strategy"
)

// NestedResolver resolves a config IRI encountered as an argument value into
// a strategy value, applying whatever cycle/memoization policy the caller
// enforces. The Constructor Pool is the only production implementation.
type NestedResolver interface {
	Resolve(ctx context.Context, configIRI string, settings *strategy.Settings) (any, error)
}

// Value resolves one argument-tree node — a single argument, a field value,
// an array element, anything reachable from config's "arguments" list — into
// a strategy-native value.
func Value(ctx context.Context, arg graph.Ref, strat strategy.ConstructionStrategy, nested NestedResolver, settings *strategy.Settings) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case arg.IsA(graph.TypeUndefinedArgument):
		return strat.CreateUndefined(ctx)

	case arg.Kind() == graph.Literal:
		return strat.CreatePrimitive(ctx, arg.Value(), arg.Datatype())

	case arg.Kind() == graph.VariableTerm:
		return strat.ResolveVariable(ctx, arg.Value(), settings)

	case arg.Has(graph.PredFields):
		return resolveFields(ctx, arg, strat, nested, settings)

	case arg.Has(graph.PredElements):
		return resolveElements(ctx, arg, strat, nested, settings)

	case arg.IsList():
		return resolveElements(ctx, arg, strat, nested, settings)

	default:
		// Any other NamedNode/BlankNode is a reference to another config
		// resource that itself needs preprocessing and construction.
		return nested.Resolve(ctx, arg.IRI(), settings)
	}
}

// Arguments resolves an ordered constructor-argument list — config's own
// "arguments" property — into the positional slice a strategy's
// CreateInstance expects.
func Arguments(ctx context.Context, config graph.Ref, strat strategy.ConstructionStrategy, nested NestedResolver, settings *strategy.Settings) ([]any, error) {
	args := config.Properties(graph.PredArguments)
	out := make([]any, 0, len(args))
	for _, a := range args {
		v, err := Value(ctx, a, strat, nested, settings)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func resolveFields(ctx context.Context, wrapper graph.Ref, strat strategy.ConstructionStrategy, nested NestedResolver, settings *strategy.Settings) (any, error) {
	entries := wrapper.Properties(graph.PredFields)
	fields := make(map[string]any, len(entries))
	for _, entry := range entries {
		key, ok := entry.Property(graph.PredKey)
		if !ok {
			return nil, fmt.Errorf("%w: field entry has no key", apperrors.ErrMalformedMappingKey)
		}
		if key.Kind() != graph.Literal {
			return nil, fmt.Errorf("%w: field key %s is not a Literal", apperrors.ErrMalformedMappingKey, key.Value())
		}
		val, ok := entry.Property(graph.PredValue)
		if !ok {
			// entries lacking a value are skipped
			continue
		}
		resolved, err := Value(ctx, val, strat, nested, settings)
		if err != nil {
			return nil, err
		}
		fields[key.Value()] = resolved
	}
	return strat.CreateHash(ctx, fields)
}

func resolveElements(ctx context.Context, wrapper graph.Ref, strat strategy.ConstructionStrategy, nested NestedResolver, settings *strategy.Settings) (any, error) {
	var items []graph.Ref
	if wrapper.Has(graph.PredElements) {
		items = wrapper.Properties(graph.PredElements)
	} else {
		items = wrapper.List()
	}
	values := make([]any, 0, len(items))
	for _, item := range items {
		v, err := Value(ctx, item, strat, nested, settings)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return strat.CreateArray(ctx, values)
}
