package preprocess

import (
	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/registry"
)

// resolveSingleComponent returns the one registered component config's
// rdf:type list resolves to, or false if the count is anything but one
// (handled by a later stage, or eventually by checkResolvable's
// AmbiguousComponentTypes).
func resolveSingleComponent(reg *registry.Registry, config graph.Ref) (graph.Ref, bool) {
	matches := reg.ResolveComponents(config.Types())
	if len(matches) != 1 {
		return graph.Ref{}, false
	}
	return matches[0], true
}

// applyParameterDefaults implements the Parameter-default behaviour inline:
// for every parameter comp declares that is missing a value on config, copy
// its "default" property onto config under the parameter's own IRI as
// predicate — parameter values live on a config keyed by the defining
// parameter's IRI.
func applyParameterDefaults(comp, config graph.Ref) {
	for _, param := range comp.Properties(graph.PredParameter) {
		key := param.IRI()
		if config.Has(key) {
			continue
		}
		if def, ok := param.Property(graph.PredDefault); ok {
			config.SetProperty(key, def)
		}
	}
}

// copyRequireFields copies requireName/requireElement/requireNoConstructor
// from comp to config unless config already declares its own (a config is
// allowed to override the component's require* directives directly). A
// component that declares no requireName of its own falls back to its own
// IRI, which is how a construction strategy's Register identity lines up
// with the component a config's rdf:type names, with no separate
// requireName declaration needed for the common case.
func copyRequireFields(comp, config graph.Ref) {
	for _, pred := range []string{graph.PredRequireElement, graph.PredRequireNoConstructor} {
		if config.Has(pred) {
			continue
		}
		if v, ok := comp.Property(pred); ok {
			config.SetProperty(pred, v)
		}
	}

	if config.Has(graph.PredRequireName) {
		return
	}
	if v, ok := comp.Property(graph.PredRequireName); ok {
		config.SetProperty(graph.PredRequireName, v)
		return
	}
	config.SetProperty(graph.PredRequireName, config.Graph().Literal(comp.IRI(), ""))
}

// hasPendingExprDefault reports whether comp declares a parameter whose
// default is an expr-lang expression (graph.DatatypeExpr) and config has no
// value for it yet — the Generics stage needs to run before
// ComponentMapped/ComponentUnmapped would otherwise claim the config and
// copy the raw expression text through as a literal value.
func hasPendingExprDefault(comp, config graph.Ref) bool {
	for _, param := range comp.Properties(graph.PredParameter) {
		if config.Has(param.IRI()) {
			continue
		}
		if def, ok := param.Property(graph.PredDefault); ok && def.Kind() == graph.Literal && def.Datatype() == graph.DatatypeExpr {
			return true
		}
	}
	return false
}

// resolveMappingItem recursively resolves one constructorArguments mapping
// item against config, producing the corresponding canonical argument node.
// It understands four shapes, tried
// in this order:
//
//   - fields: a nested object with a field list, each field keyed by a
//     (usually literal) "key" and resolved the same way as any mapping item
//   - elements: a nested ordered list, each entry resolved the same way
//   - value: a literal constant copied through as-is
//   - onParameter: config's own values for the named parameter — zero
//     values resolve to "no value" (has=false), one to that value directly,
//     more than one to a freshly built RDF list
//
// The second return value reports whether a value was actually found; a
// missing onParameter lookup is not an error; it is the one case an
// argument position can be legitimately empty, which Construct turns into
// an explicit undefined placeholder (fields/elements contexts instead drop
// the entry: entries lacking a value are skipped).
func resolveMappingItem(item, config graph.Ref) (graph.Ref, bool, error) {
	g := config.Graph()

	switch {
	case item.Has(graph.PredFields):
		entries := item.Properties(graph.PredFields)
		resolved := make([]graph.Ref, 0, len(entries))
		for _, f := range entries {
			key, hasKey := f.Property(graph.PredKey)
			val, has, err := resolveMappingItem(f, config)
			if err != nil {
				return graph.Ref{}, false, err
			}
			entry := g.BlankNode()
			if hasKey {
				entry.SetProperty(graph.PredKey, key)
			}
			if has {
				entry.SetProperty(graph.PredValue, val)
			}
			resolved = append(resolved, entry)
		}
		out := g.BlankNode()
		out.SetProperty(graph.PredFields, resolved...)
		return out, true, nil

	case item.Has(graph.PredElements):
		entries := item.Properties(graph.PredElements)
		resolved := make([]graph.Ref, 0, len(entries))
		for _, e := range entries {
			val, has, err := resolveMappingItem(e, config)
			if err != nil {
				return graph.Ref{}, false, err
			}
			if has {
				resolved = append(resolved, val)
			}
		}
		out := g.BlankNode()
		out.SetProperty(graph.PredElements, resolved...)
		return out, true, nil

	case item.Has(graph.PredValue):
		v, _ := item.Property(graph.PredValue)
		return v, true, nil

	case item.Has(graph.PredOnParameter):
		param, _ := item.Property(graph.PredOnParameter)
		values := config.Properties(param.IRI())
		switch len(values) {
		case 0:
			return graph.Ref{}, false, nil
		case 1:
			return values[0], true, nil
		default:
			return g.NewList(values), true, nil
		}

	default:
		return graph.Ref{}, false, nil
	}
}
